package visibility

// State is a node of the visibility state machine.
type State string

const (
	Hidden  State = "hidden"
	Visible State = "visible"
)

// Transition is an edge of the state machine.
type Transition struct {
	From     State
	To       State
	Event    string
	Deferred bool
}

// Transitions returns the state machine edges for m.
func Transitions(m Mode) []Transition {
	switch m {
	case Hover:
		return []Transition{
			{From: Hidden, To: Visible, Event: "pointerenter", Deferred: true},
			{From: Visible, To: Hidden, Event: "pointerleave", Deferred: true},
		}
	case Click:
		return []Transition{
			{From: Hidden, To: Visible, Event: "click"},
			{From: Visible, To: Hidden, Event: "click"},
			{From: Visible, To: Hidden, Event: "pointerdown outside"},
		}
	case Focus:
		return []Transition{
			{From: Hidden, To: Visible, Event: "focus"},
			{From: Visible, To: Hidden, Event: "blur"},
		}
	}
	return nil
}
