package game

import (
	"github.com/plus3/echonet/ecs"
)

// TimerSystem ticks the level countdown down while playing.
type TimerSystem struct {
	Timer ecs.Singleton[Countdown]
}

func (s *TimerSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	if timer.Enabled && timer.Remaining > 0 {
		timer.Remaining -= frame.DeltaTime
		if timer.Remaining < 0 {
			timer.Remaining = 0
		}
	}
}

// FailSystem ends the attempt the moment it becomes unwinnable: the countdown
// ran out, or on ordered levels the activation log diverged from the required
// sequence. Gated on ModePlaying.
type FailSystem struct {
	Book     ecs.Singleton[LevelBook]
	Timer    ecs.Singleton[Countdown]
	Log      ecs.Singleton[ActivationLog]
	Director ecs.Singleton[Director]
}

func (s *FailSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Timer.Get().Expired() {
		s.Director.Get().Set(ModeGameOver)
		return
	}

	level := s.Book.Get().CurrentLevel()
	if level == nil || level.Sequence == nil {
		return
	}

	recorded := s.Log.Get().Ids
	for i, id := range recorded {
		if i >= len(level.Sequence) || level.Sequence[i] != id {
			s.Director.Get().Set(ModeGameOver)
			return
		}
	}
}

// CompletionSystem decides the attempt once the echo has reached the target:
// levels without a required sequence complete on arrival, ordered levels
// complete only when the activation log matches the sequence exactly.
// Arrival with an incomplete sequence fails the attempt. Gated on
// ModePlaying.
type CompletionSystem struct {
	Book     ecs.Singleton[LevelBook]
	Log      ecs.Singleton[ActivationLog]
	Runtime  ecs.Singleton[LevelRuntime]
	Director ecs.Singleton[Director]
}

func (s *CompletionSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Runtime.Get().TargetReached {
		return
	}

	level := s.Book.Get().CurrentLevel()
	if level == nil {
		return
	}

	if level.Sequence == nil || sequencesEqual(s.Log.Get().Ids, level.Sequence) {
		s.Director.Get().Set(ModeLevelComplete)
	} else {
		s.Director.Get().Set(ModeGameOver)
	}
}

func sequencesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
