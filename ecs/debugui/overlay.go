package debugui

import (
	"github.com/plus3/echonet/ecs"
)

// SpawnOverlay spawns one ImguiItem rendering the standard panel set: stats,
// entity browser and inspector. Extra closures are rendered after the
// standard panels, for application-specific windows.
func SpawnOverlay(storage *ecs.Storage, stats func() *ecs.SchedulerStats, extra ...func()) {
	panel := NewStatsPanel(120, stats)
	browser := NewEntityBrowser(256)
	inspector := NewComponentInspector()

	storage.Spawn(ImguiItem{
		Render: func() {
			panel.Render(storage)
			browser.Render(storage)
			inspector.Render(storage, browser.Selected())
			for _, render := range extra {
				render()
			}
		},
	})
}
