package grammar

import "fmt"

// GrammarError reports a structurally malformed grammar at construction
// (undeclared variable/terminal references, missing start symbol).
type GrammarError struct {
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar: %s", e.Reason)
}
