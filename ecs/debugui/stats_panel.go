package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/echonet/ecs"
)

// StatsPanel shows frame timing, storage occupancy and per-system execution
// costs. Scheduler stats come through a provider so the panel does not hold
// the scheduler itself.
type StatsPanel struct {
	history   []float32
	index     int
	lastFrame time.Time

	schedulerStats func() *ecs.SchedulerStats
}

// NewStatsPanel creates a panel keeping historyFrames of frame times. The
// stats provider may be nil; the system table is hidden then.
func NewStatsPanel(historyFrames int, stats func() *ecs.SchedulerStats) *StatsPanel {
	return &StatsPanel{
		history:        make([]float32, historyFrames),
		lastFrame:      time.Now(),
		schedulerStats: stats,
	}
}

func (p *StatsPanel) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	now := time.Now()
	frameMs := float32(now.Sub(p.lastFrame).Seconds() * 1000)
	p.lastFrame = now
	p.history[p.index] = frameMs
	p.index = (p.index + 1) % len(p.history)

	var avg float32
	for _, ms := range p.history {
		avg += ms
	}
	avg /= float32(len(p.history))

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d in %d archetypes", stats.TotalEntityCount, stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms avg (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frame-times", &p.history[0], int32(len(p.history)))

	if p.schedulerStats != nil {
		if imgui.TreeNodeStr("Systems") {
			p.renderSystemTable()
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X: %d entities, %d component types",
				arch.ID, arch.EntityCount, len(arch.ComponentTypes)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (p *StatsPanel) renderSystemTable() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("##systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Last")
	imgui.TableHeadersRow()

	for _, sys := range p.schedulerStats().Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.LastDuration.String())
	}

	imgui.EndTable()
}
