package main

import (
	"log"

	"github.com/plus3/echonet/ecs"
	"github.com/plus3/echonet/game"
)

// AutoPlaySystem is the simulator's stand-in for both the player and the
// menus: it steers the director through the level flow and, while playing,
// synthesizes one pointer click per planned node.
type AutoPlaySystem struct {
	Director ecs.Singleton[game.Director]
	Book     ecs.Singleton[game.LevelBook]
	Pointer  ecs.Singleton[game.PointerState]
	Runtime  ecs.Singleton[game.LevelRuntime]
	Timer    ecs.Singleton[game.Countdown]

	clickInterval int
	report        *Report

	plan       []int
	next       int
	cooldown   int
	levelID    int
	frame      int
	levelStart int
}

func (s *AutoPlaySystem) Execute(frame *ecs.UpdateFrame) {
	s.frame++

	pointer := s.Pointer.Get()
	pointer.Clicked = false

	switch s.Director.Get().Current {
	case game.ModeMainMenu:
		s.Director.Get().Set(game.ModeLoading)

	case game.ModePlaying:
		s.play(frame)

	case game.ModeLevelComplete:
		s.finishLevel(OutcomeCompleted)
		if s.Book.Get().Advance() {
			s.Director.Get().Set(game.ModeLoading)
		} else {
			s.Director.Get().Set(game.ModeGameWon)
		}

	case game.ModeGameOver:
		s.finishLevel(OutcomeFailed)
		s.report.Done = true

	case game.ModeGameWon:
		s.report.Done = true
	}
}

func (s *AutoPlaySystem) play(frame *ecs.UpdateFrame) {
	level := s.Book.Get().CurrentLevel()
	if level == nil {
		return
	}

	if s.levelID != level.ID {
		s.levelID = level.ID
		s.levelStart = s.frame
		s.plan = level.ClickPlan()
		s.next = 0
		s.cooldown = s.clickInterval
		if s.plan == nil {
			log.Printf("level %d: no click plan, the level graph is unsolvable", level.ID)
		}
	}

	if s.next >= len(s.plan) {
		return
	}

	if s.cooldown > 0 {
		s.cooldown--
		return
	}

	ref, ok := s.Runtime.Get().Lookup(s.plan[s.next])
	if !ok {
		log.Printf("level %d: planned node %d not found", level.ID, s.plan[s.next])
		s.next++
		return
	}
	position := ecs.ReadComponent[game.Position](frame.Storage, ref.Id)
	if position == nil {
		s.next++
		return
	}

	pointer := s.Pointer.Get()
	pointer.WorldX, pointer.WorldY = position.X, position.Y
	pointer.Clicked = true

	s.next++
	s.cooldown = s.clickInterval
}

func (s *AutoPlaySystem) finishLevel(outcome string) {
	if s.levelID == 0 {
		return
	}

	s.report.Levels = append(s.report.Levels, LevelResult{
		ID:       s.levelID,
		Name:     s.Book.Get().CurrentLevel().Name,
		Outcome:  outcome,
		Frames:   s.frame - s.levelStart,
		TimeLeft: s.Timer.Get().Remaining,
	})
	s.levelID = 0
}
