package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// RunCondition gates a system: when it returns false the system is skipped
// for that frame. Conditions are evaluated fresh every frame, so systems can
// be gated on singleton state (game mode, pause flags, and so on).
type RunCondition func(storage *Storage) bool

// SystemOption configures a system at registration time.
type SystemOption func(*systemEntry)

// RunIf attaches a run condition to the system being registered.
func RunIf(cond RunCondition) SystemOption {
	return func(entry *systemEntry) {
		entry.cond = cond
	}
}

// frameRefresher is implemented by Query fields; the Scheduler refreshes them
// right before their system executes.
type frameRefresher interface {
	Execute()
}

type systemEntry struct {
	system  System
	cond    RunCondition
	queries []frameRefresher
	stats   systemStatsInternal
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SchedulerStats aggregates execution statistics across all systems.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds execution statistics for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Scheduler executes registered systems in registration order, once per
// frame, and flushes the frame's command buffer afterwards.
type Scheduler struct {
	storage *Storage
	entries []*systemEntry
}

// NewScheduler creates a scheduler over the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds a system, initializes its Query and Singleton fields, and
// applies any options (such as RunIf).
func (s *Scheduler) Register(system System, opts ...SystemOption) {
	entry := &systemEntry{
		system: system,
		stats: systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	entry.queries = s.initializeFields(system)

	for _, opt := range opts {
		opt(entry)
	}

	s.entries = append(s.entries, entry)
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// initializeFields walks the system struct, calls Init(storage) on every
// Query and Singleton field, and collects the queries for per-frame refresh.
func (s *Scheduler) initializeFields(system System) []frameRefresher {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameRefresher

	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		isSingleton := strings.HasPrefix(typeName, "Singleton[")
		if !isQuery && !isSingleton {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("ecs: Init method not found on field " + systemType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			queries = append(queries, field.Addr().Interface().(frameRefresher))
		}
	}

	return queries
}

// Once runs a single frame: every registered system whose run condition
// passes, in order, followed by the command-buffer flush.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.entries {
		if entry.cond != nil && !entry.cond(s.storage) {
			continue
		}

		for _, q := range entry.queries {
			q.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		st := &entry.stats
		st.executionCount++
		st.lastDuration = duration
		st.totalDuration += duration
		if duration < st.minDuration {
			st.minDuration = duration
		}
		if duration > st.maxDuration {
			st.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.storage)
}

// Run executes frames at the given interval until the context is cancelled.
// Useful for headless loops; windowed callers drive Once from the render
// loop instead.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of per-system execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
	}

	for i, entry := range s.entries {
		st := entry.stats

		avgDuration := time.Duration(0)
		if st.executionCount > 0 {
			avgDuration = st.totalDuration / time.Duration(st.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           st.name,
			ExecutionCount: st.executionCount,
			MinDuration:    st.minDuration,
			MaxDuration:    st.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   st.lastDuration,
			TotalDuration:  st.totalDuration,
		}
		stats.TotalExecutions += st.executionCount
	}

	return stats
}
