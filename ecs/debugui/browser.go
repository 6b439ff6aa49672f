package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/echonet/ecs"
)

type entityRow struct {
	id          ecs.EntityId
	archetypeId uint32
	components  string
}

// EntityBrowser lists every live entity with a substring filter; clicking a
// row selects the entity for the ComponentInspector.
type EntityBrowser struct {
	rows     []entityRow
	lastArch int
	filter   string
	selected ecs.EntityId
	maxRows  int
}

// NewEntityBrowser creates a browser showing at most maxRows rows at a time.
func NewEntityBrowser(maxRows int) *EntityBrowser {
	return &EntityBrowser{lastArch: -1, maxRows: maxRows}
}

// Selected returns the entity picked in the list, 0 for none.
func (b *EntityBrowser) Selected() ecs.EntityId {
	return b.selected
}

func (b *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// Rows are rebuilt every frame; entity counts in a level are tiny.
	b.rebuild(storage)

	imgui.InputTextWithHint("##filter", "Filter by component...", &b.filter, imgui.InputTextFlagsNone, nil)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("##entities", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		shown := 0
		filter := strings.ToLower(b.filter)
		for _, row := range b.rows {
			if filter != "" && !strings.Contains(strings.ToLower(row.components), filter) {
				continue
			}
			if shown >= b.maxRows {
				break
			}
			shown++

			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.id), b.selected == row.id,
				imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.id
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.archetypeId))
			imgui.TableNextColumn()
			imgui.Text(row.components)
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("%d entities", len(b.rows)))
	imgui.End()
}

func (b *EntityBrowser) rebuild(storage *ecs.Storage) {
	b.rows = b.rows[:0]

	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, typ := range archetype.Types() {
			names[i] = shortTypeName(typ.String())
		}
		components := strings.Join(names, ", ")

		for id := range archetype.Iter() {
			b.rows = append(b.rows, entityRow{
				id:          id,
				archetypeId: archetype.ID(),
				components:  components,
			})
		}
	}
}

// shortTypeName strips the package qualifier from a type name.
func shortTypeName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
