// Command echonet-sim plays through every level headlessly, synthesizing the
// clicks a player would make, and prints a run report. Useful for checking
// that the level table stays solvable and for profiling the frame loop.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/plus3/echonet/ecs"
	"github.com/plus3/echonet/game"
)

const simDeltaTime = 1.0 / 60.0

func main() {
	maxFrames := flag.Int("max-frames", 60*60*10, "Abort after this many simulated frames.")
	clickInterval := flag.Int("click-interval", 15, "Frames between synthesized clicks.")
	flag.Parse()

	log.Println("Starting EchoNet simulation...")

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	levels := game.BuiltinLevels()
	director := game.InstallResources(storage, levels, 1280, 720)

	report := NewReport(len(levels))

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.DirectorSystem{})
	scheduler.Register(&AutoPlaySystem{clickInterval: *clickInterval, report: report})
	game.RegisterGameplaySystems(scheduler)
	game.InstallGameplayTeardown(director, storage)

	frames := 0
	for ; frames < *maxFrames && !report.Done; frames++ {
		scheduler.Once(simDeltaTime)
	}

	report.TotalFrames = frames
	report.TimedOut = !report.Done
	report.SchedulerStats = scheduler.GetStats()

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("generating report: %v", err)
	}

	if report.TimedOut || report.Failed() {
		os.Exit(1)
	}
}
