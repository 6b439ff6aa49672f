package ecs

// System is a unit of per-frame behavior. Implementations usually declare
// Query and Singleton fields, which the Scheduler initializes at registration
// and refreshes before each Execute call, plus whatever state they need to
// persist across frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame carries the per-frame context handed to every system.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
