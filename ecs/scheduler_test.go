package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
)

type motionSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*Motion
	}]
	ExecuteCount int
}

func (s *motionSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Transform.X += item.Motion.DX * float32(frame.DeltaTime)
		item.Transform.Y += item.Motion.DY * float32(frame.DeltaTime)
	}
}

type pauseFlag struct {
	Paused bool
}

type countingSystem struct {
	ExecuteCount int
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	scheduler.Register(&commandRecorder{run: func(frame *ecs.UpdateFrame) {
		order = append(order, "first")
	}})
	scheduler.Register(&commandRecorder{run: func(frame *ecs.UpdateFrame) {
		order = append(order, "second")
	}})

	scheduler.Once(0)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSchedulerInitializesAndRefreshesQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &motionSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Transform{}, Motion{DX: 2})

	// Spawned after registration: the per-frame refresh must pick it up.
	scheduler.Once(1.0)
	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, float32(2), ecs.ReadComponent[Transform](storage, id).X)

	scheduler.Once(0.5)
	assert.Equal(t, float32(3), ecs.ReadComponent[Transform](storage, id).X)
}

func TestSchedulerRunIf(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(pauseFlag{Paused: true})

	scheduler := ecs.NewScheduler(storage)

	counting := &countingSystem{}
	scheduler.Register(counting, ecs.RunIf(func(storage *ecs.Storage) bool {
		var flag *pauseFlag
		storage.ReadSingleton(&flag)
		return !flag.Paused
	}))

	scheduler.Once(0)
	assert.Equal(t, 0, counting.ExecuteCount)

	// Conditions are re-evaluated each frame.
	var flag *pauseFlag
	storage.ReadSingleton(&flag)
	flag.Paused = false

	scheduler.Once(0)
	assert.Equal(t, 1, counting.ExecuteCount)
}

type singletonFieldSystem struct {
	Flag ecs.Singleton[pauseFlag]

	Observed bool
}

func (s *singletonFieldSystem) Execute(frame *ecs.UpdateFrame) {
	s.Observed = s.Flag.Get().Paused
}

func TestSchedulerInitializesSingletonFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(pauseFlag{Paused: true})

	scheduler := ecs.NewScheduler(storage)
	system := &singletonFieldSystem{}
	scheduler.Register(system)

	scheduler.Once(0)
	assert.True(t, system.Observed)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	skipped := &countingSystem{}
	scheduler.Register(&motionSystem{})
	scheduler.Register(skipped, ecs.RunIf(func(*ecs.Storage) bool { return false }))

	scheduler.Once(0)
	scheduler.Once(0)

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(2), stats.TotalExecutions)

	assert.Equal(t, "motionSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(0), stats.Systems[1].ExecutionCount)
}
