package turingconv

import (
	"fmt"

	"github.com/baobabgit/automata/turing"
)

// ConversionEquivalenceFailure reports that a converted machine disagreed
// with its source on some sample input, as found by VerifyEquivalence.
type ConversionEquivalenceFailure struct {
	Word []turing.SymbolID
	Want turing.Outcome
	Got  turing.Outcome
}

func (e *ConversionEquivalenceFailure) Error() string {
	return fmt.Sprintf("turingconv: conversion disagreed on %v: want %s, got %s", e.Word, e.Want, e.Got)
}
