package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// TransitionRecord is one canonical transition, encoded as plain strings
// so any automaton family (FA, PDA, TM) can be fingerprinted without this
// package depending on their concrete types. Fields a family does not use
// (e.g. an FA's Pop/Push) are left empty.
type TransitionRecord struct {
	From, Read, To, Write, Move string
	Pop, Push                   string
}

// Fingerprint computes the content address of an automaton already in
// canonical form: states renumbered by the caller's own canonical order
// (e.g. turingconv.rebuildFromStateClasses's BFS order, fa's Hopcroft
// quotient order) and its transitions supplied here. Fingerprint sorts
// the records itself — the caller only owes canonical state names, not a
// canonical transition order — then hashes the sorted, delimited encoding
// into a fixed-width Key with SHA-256, the standard fixed-width digest;
// no library in the reference corpus offers a non-cryptographic hash, and
// a 32-byte cryptographic digest is the conventional choice for a
// content-addressed cache key regardless (collision resistance is a
// correctness property here, not a hardened-against-attacker one, but the
// stdlib already provides it for free).
func Fingerprint(initial string, accepting []string, transitions []TransitionRecord) Key {
	records := make([]string, len(transitions))
	for i, t := range transitions {
		records[i] = fmt.Sprintf("%s>%s>%s>%s>%s>%s>%s", t.From, t.Read, t.To, t.Write, t.Move, t.Pop, t.Push)
	}
	sort.Strings(records)

	acc := make([]string, len(accepting))
	copy(acc, accepting)
	sort.Strings(acc)

	var b strings.Builder
	b.WriteString("init=")
	b.WriteString(initial)
	b.WriteString("|acc=")
	b.WriteString(strings.Join(acc, ","))
	b.WriteString("|tr=")
	b.WriteString(strings.Join(records, ";"))

	return Key(sha256.Sum256([]byte(b.String())))
}
