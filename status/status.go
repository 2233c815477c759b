package status

import "fmt"

// Kind enumerates the states a host can observe
type Kind uint8

const (
	KindIdle Kind = iota
	KindConverting
	KindPlaying
	KindComplete
	KindError
)

var kindNames = [...]string{
	KindIdle:       "Idle",
	KindConverting: "Converting",
	KindPlaying:    "Playing",
	KindComplete:   "Complete",
	KindError:      "Error",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Status is one entry of the status stream
// Mode is set for KindPlaying, Message for KindError
type Status struct {
	Kind    Kind
	Mode    string
	Message string
}

func Idle() Status       { return Status{Kind: KindIdle} }
func Converting() Status { return Status{Kind: KindConverting} }
func Complete() Status   { return Status{Kind: KindComplete} }

func Playing(mode string) Status {
	return Status{Kind: KindPlaying, Mode: mode}
}

// Error carries msg verbatim for display by the host
func Error(msg string) Status {
	return Status{Kind: KindError, Message: msg}
}

func (s Status) String() string {
	switch s.Kind {
	case KindPlaying:
		return fmt.Sprintf("Playing(%s)", s.Mode)
	case KindError:
		return fmt.Sprintf("Error(%s)", s.Message)
	default:
		return s.Kind.String()
	}
}
