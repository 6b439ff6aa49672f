package game

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/echonet/ecs"
)

// LevelBook holds the compiled-in level table and the cursor into it.
type LevelBook struct {
	Levels  []Level
	Current int
}

// CurrentLevel returns the level under the cursor, or nil past the end.
func (b *LevelBook) CurrentLevel() *Level {
	if b.Current < 0 || b.Current >= len(b.Levels) {
		return nil
	}
	return &b.Levels[b.Current]
}

// Advance moves to the next level. Returns false when there is none.
func (b *LevelBook) Advance() bool {
	if b.Current+1 >= len(b.Levels) {
		return false
	}
	b.Current++
	return true
}

// Rewind puts the cursor back on the first level. An out-of-range cursor
// also wraps to 0.
func (b *LevelBook) Rewind() {
	b.Current = 0
}

// Countdown is the per-level timer. Levels without a limit leave Enabled
// false and the HUD shows no time.
type Countdown struct {
	Remaining float64
	Limit     float64
	Enabled   bool
}

// Arm configures the countdown for a level's limit; limit <= 0 disables it.
func (c *Countdown) Arm(limit float64) {
	c.Limit = limit
	c.Remaining = limit
	c.Enabled = limit > 0
}

// Expired reports whether an armed countdown has run out.
func (c *Countdown) Expired() bool {
	return c.Enabled && c.Remaining <= 0
}

// ActivationLog is the ordered, duplicate-suppressed list of node ids the
// player has activated during the current level attempt.
type ActivationLog struct {
	Ids []int
}

// Record appends a node id unless it was already recorded.
func (l *ActivationLog) Record(id int) {
	for _, seen := range l.Ids {
		if seen == id {
			return
		}
	}
	l.Ids = append(l.Ids, id)
}

// Clear resets the log for a new attempt.
func (l *ActivationLog) Clear() {
	l.Ids = l.Ids[:0]
}

// EchoRoute is the planned path for the next echo, head first. The path
// planner fills it and the echo spawner consumes it.
type EchoRoute struct {
	Nodes []*ecs.EntityRef
}

func (r *EchoRoute) Empty() bool {
	return len(r.Nodes) == 0
}

func (r *EchoRoute) Set(path []*ecs.EntityRef) {
	r.Nodes = path
}

func (r *EchoRoute) Clear() {
	r.Nodes = nil
}

// LevelRuntime is the per-level world state the systems share: the explicit
// node-id -> entity mapping (instead of per-system linear scans) and the
// target-arrival latch the completion check reads.
type LevelRuntime struct {
	nodes         *intmap.Map[int64, *ecs.EntityRef]
	TargetReached bool
}

// NewLevelRuntime returns an empty runtime.
func NewLevelRuntime() LevelRuntime {
	return LevelRuntime{nodes: intmap.New[int64, *ecs.EntityRef](32)}
}

// Bind records the entity behind a logical node id.
func (rt *LevelRuntime) Bind(id int, ref *ecs.EntityRef) {
	rt.nodes.Put(int64(id), ref)
}

// Lookup returns the live entity ref for a node id.
func (rt *LevelRuntime) Lookup(id int) (*ecs.EntityRef, bool) {
	ref, ok := rt.nodes.Get(int64(id))
	if !ok || !ref.Alive() {
		return nil, false
	}
	return ref, true
}

// Clear drops all bindings and resets the arrival latch.
func (rt *LevelRuntime) Clear() {
	rt.nodes.Clear()
	rt.TargetReached = false
}

// PointerState is the per-frame mouse snapshot shared by interaction and UI
// systems. UICaptured is set when an overlay (debug UI) consumed the input.
type PointerState struct {
	ScreenX, ScreenY float32
	WorldX, WorldY   float32
	Clicked          bool
	UICaptured       bool
}

// Viewport maps between screen pixels and world coordinates. The world
// origin sits at the screen center with y pointing up.
type Viewport struct {
	ScreenW, ScreenH int
}

func (v Viewport) WorldToScreen(p Position) (float32, float32) {
	return float32(v.ScreenW)/2 + p.X, float32(v.ScreenH)/2 - p.Y
}

func (v Viewport) ScreenToWorld(x, y float32) (float32, float32) {
	return x - float32(v.ScreenW)/2, float32(v.ScreenH)/2 - y
}

// QuitRequest is raised by the menu Quit button; the run loop watches it.
type QuitRequest struct {
	Requested bool
}
