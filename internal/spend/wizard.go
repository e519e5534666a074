package spend

import "fmt"

// Stage is the wizard's position in the questionnaire flow. The flow is
// an explicit state machine so that contradictory combinations (loading
// while showing results, results without a submitted profile) cannot be
// represented.
type Stage string

const (
	StageSelect      Stage = "select"
	StageQuestions   Stage = "questions"
	StageCalculating Stage = "calculating"
	StageResults     Stage = "results"
	StageFailed      Stage = "failed"
)

var transitions = map[Stage][]Stage{
	StageSelect:      {StageQuestions},
	StageQuestions:   {StageSelect, StageCalculating},
	StageCalculating: {StageResults, StageFailed},
	StageResults:     {StageSelect},
	StageFailed:      {StageQuestions, StageSelect},
}

// Wizard tracks the questionnaire flow for one session.
type Wizard struct {
	stage     Stage
	collector *Collector
}

func NewWizard() *Wizard {
	return &Wizard{
		stage:     StageSelect,
		collector: NewCollector(),
	}
}

func (w *Wizard) Stage() Stage          { return w.stage }
func (w *Wizard) Collector() *Collector { return w.collector }

// Transition moves the wizard to the target stage, rejecting moves the
// flow does not allow.
func (w *Wizard) Transition(to Stage) error {
	for _, allowed := range transitions[w.stage] {
		if allowed == to {
			w.stage = to
			return nil
		}
	}
	return fmt.Errorf("invalid wizard transition: %s -> %s", w.stage, to)
}

// Submit freezes the answers and moves to the calculating stage. It
// fails if no group has a usable answer.
func (w *Wizard) Submit() error {
	if w.stage != StageQuestions {
		return fmt.Errorf("cannot submit from stage %s", w.stage)
	}
	answered := false
	for _, g := range []Group{GroupShopping, GroupFoodDining, GroupTravel, GroupBills, GroupHousehold} {
		if w.collector.Complete(g) {
			answered = true
			break
		}
	}
	if !answered {
		return fmt.Errorf("no spend category answered")
	}
	return w.Transition(StageCalculating)
}

// Reset returns to the start and discards answers.
func (w *Wizard) Reset() {
	w.stage = StageSelect
	w.collector.Reset()
}
