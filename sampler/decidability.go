package sampler

import "github.com/baobabgit/automata/turing"

// Decidability is the bounded-sampling verdict spec.md §4.10 assigns a
// machine from a curated set of inputs. It is never a claim about the
// underlying language's true decidability — only about what the sampled
// runs, under a fixed step/time budget, happened to do.
type Decidability uint8

const (
	// Decidable: every sampled input halted within budget.
	Decidable Decidability = iota
	// SemiDecidable: at least one sampled input halted by accepting, and
	// at least one exceeded budget without halting.
	SemiDecidable
	// Undetermined: neither of the above patterns held — some sampled
	// input exceeded budget and none halted by accepting.
	Undetermined
)

func (d Decidability) String() string {
	switch d {
	case Decidable:
		return "decidable"
	case SemiDecidable:
		return "semi-decidable"
	default:
		return "undetermined"
	}
}

// SampleDecidability runs m against every word in inputs under cfg and
// classifies the result. Budget here comes entirely from cfg (step cap,
// deadline, or cancellation) — turing.Simulate reports turing.BudgetExceeded
// for any run that does not halt within it.
func SampleDecidability(m *turing.TM, inputs [][]turing.SymbolID, cfg turing.Config) (Decidability, error) {
	allHalted := true
	sawAcceptHalt := false
	sawBudgetExceeded := false

	for _, word := range inputs {
		outcome, err := turing.Simulate(m, word, cfg)
		if err != nil {
			return Undetermined, err
		}
		switch outcome {
		case turing.Accept:
			sawAcceptHalt = true
		case turing.Reject:
			// halted, no further classification needed
		case turing.BudgetExceeded:
			allHalted = false
			sawBudgetExceeded = true
		}
	}

	if allHalted {
		return Decidable, nil
	}
	if sawAcceptHalt && sawBudgetExceeded {
		return SemiDecidable, nil
	}
	return Undetermined, nil
}
