// Package turingconv implements the Turing-kernel conversions of
// spec.md §4.9 (C10): NTM->DTM dovetailing, multi-tape->single-tape
// track encoding, state/symbol minimization, and conversion-equivalence
// verification.
package turingconv

import "github.com/baobabgit/automata/turing"

// sentinelSymbol marks position -1 of a tape, the left edge a rewind
// sweep seeks back to. Never interned as an ordinary alphabet member, the
// same reserved-name convention pda.Build uses for "\x00epsilon".
const sentinelSymbol = "\x00dovetail-left-edge"
