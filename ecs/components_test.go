package ecs_test

import "github.com/plus3/echonet/ecs"

// Shared fixture components for the package tests.
type Transform struct {
	X, Y float32
}

type Motion struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type Title struct {
	Value string
}

type Marker struct{}

type Charge int32

type Wallet struct {
	Coins []int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Hitpoints](registry)
	ecs.RegisterComponent[Title](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Charge](registry)
	ecs.RegisterComponent[Wallet](registry)
	return registry
}
