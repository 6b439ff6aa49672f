package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/echonet/ecs"
)

// ComponentInspector shows the component values of the entity selected in the
// EntityBrowser, walked with reflection. Read-only.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	archetype := storage.GetArchetypeById(selected.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d is gone", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (archetype 0x%X)", selected, selected.ArchetypeId()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(shortTypeName(compType.String())) {
			renderValue(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderValue(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	for _, field := range structFields(val.Type()) {
		fieldVal := val.Field(field.index)
		renderField(field.name, fieldVal)
	}
}

func renderField(name string, val reflect.Value) {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val)
			imgui.TreePop()
		}
	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))
	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
	case reflect.Func, reflect.Chan:
		imgui.Text(name + ": <" + val.Kind().String() + ">")
	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

type fieldInfo struct {
	name  string
	index int
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// structFields returns the exported fields of a struct type, cached.
func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.IsExported() {
			fields = append(fields, fieldInfo{name: field.Name, index: i})
		}
	}

	fieldCache.Store(t, fields)
	return fields
}
