package tailoring

// State is a step of the tailoring state machine
type State string

// Tailoring states in the order a successful request visits them
const (
	StateReceived   State = "received"
	StateNormalized State = "normalized"
	StateScored     State = "scored"
	StatePlanned    State = "planned"
	StateInvoking   State = "invoking"
	StateValidating State = "validating"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// allowed lists legal successors for each state
var allowed = map[State][]State{
	StateReceived:   {StateNormalized, StateFailed},
	StateNormalized: {StateScored, StateFailed},
	StateScored:     {StatePlanned, StateFailed},
	StatePlanned:    {StateInvoking, StateCompleted, StateFailed},
	StateInvoking:   {StateValidating, StateInvoking, StateFailed},
	StateValidating: {StateInvoking, StateCompleted, StateFailed},
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// CanTransition reports whether from -> to is a legal step
func CanTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition is one recorded step of a tailoring run
type Transition struct {
	RunID   string `json:"run_id"`
	From    State  `json:"from,omitempty"`
	To      State  `json:"to"`
	Attempt int    `json:"attempt,omitempty"`
	Message string `json:"message,omitempty"`
}

// TransitionFunc observes transitions as they happen
type TransitionFunc func(Transition)
