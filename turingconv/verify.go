package turingconv

import (
	"github.com/baobabgit/automata/turing"
)

// VerifyEquivalence samples every word in samples against both src and
// converted, running each under cfg, and returns the first
// *ConversionEquivalenceFailure found — nil if every sample agrees.
// Intended for the small, hand-chosen sample sets a conversion's own
// tests supply; it is a spot check, not a proof, the same role
// bridge_test.go's PDA<->CFG round-trip samples play for that package.
func VerifyEquivalence(src, converted *turing.TM, samples [][]turing.SymbolID, cfg turing.Config) (*ConversionEquivalenceFailure, error) {
	for _, word := range samples {
		want, err := turing.Simulate(src, word, cfg)
		if err != nil {
			return nil, err
		}
		got, err := turing.Simulate(converted, word, cfg)
		if err != nil {
			return nil, err
		}
		if want != got {
			return &ConversionEquivalenceFailure{Word: word, Want: want, Got: got}, nil
		}
	}
	return nil, nil
}
