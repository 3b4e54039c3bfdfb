package mastery

// MasteryState represents an item's position in the mastery lifecycle.
type MasteryState string

const (
	StateUnseen     MasteryState = "unseen"
	StateLearning   MasteryState = "learning"
	StateStruggling MasteryState = "struggling"
	StateMastered   MasteryState = "mastered"
)

// DisplayName returns a human-readable label for the state.
func (s MasteryState) DisplayName() string {
	switch s {
	case StateUnseen:
		return "Unseen"
	case StateLearning:
		return "Learning"
	case StateStruggling:
		return "Struggling"
	case StateMastered:
		return "Mastered"
	default:
		return string(s)
	}
}

// StateTransition records a mastery state change for display and logging.
type StateTransition struct {
	ItemID  string
	From    MasteryState
	To      MasteryState
	Trigger string // "correct" or "incorrect"
}

// Next returns the state an item moves to after one answer.
//
//	correct:   Unseen, Struggling -> Learning; Learning, Mastered -> Mastered
//	incorrect: Mastered -> Learning; Learning, Unseen, Struggling -> Struggling
func Next(from MasteryState, correct bool) MasteryState {
	if correct {
		switch from {
		case StateLearning, StateMastered:
			return StateMastered
		default:
			return StateLearning
		}
	}
	if from == StateMastered {
		return StateLearning
	}
	return StateStruggling
}
