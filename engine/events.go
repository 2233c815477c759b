package engine

// EventType is a control signal delivered to a running reveal
type EventType uint8

const (
	// EventQuit ends the frame loop at the next frame boundary, in any state
	EventQuit EventType = iota + 1

	// EventRestart rewinds progress to zero and keeps the realized score grid
	EventRestart
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "Quit"
	case EventRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Event is queued by hosts and drained once per frame
type Event struct {
	Type EventType
}

// Quit and Restart are ready-made events for hosts
var (
	Quit    = Event{Type: EventQuit}
	Restart = Event{Type: EventRestart}
)
