package cellformat

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is a relational test from a bracket tag such as [>=100].
type Condition struct {
	Op      string
	Operand float64
}

// parseCondition parses the content of a condition bracket (without the
// brackets), e.g. ">=100" or "<>0".
func parseCondition(content string) (*Condition, error) {
	s := strings.TrimSpace(content)
	var op string
	switch {
	case strings.HasPrefix(s, "<="), strings.HasPrefix(s, ">="),
		strings.HasPrefix(s, "<>"), strings.HasPrefix(s, "=="),
		strings.HasPrefix(s, "!="):
		op = s[:2]
	case strings.HasPrefix(s, "<"), strings.HasPrefix(s, ">"), strings.HasPrefix(s, "="):
		op = s[:1]
	default:
		return nil, fmt.Errorf("cellformat: invalid condition %q", content)
	}
	operand, err := strconv.ParseFloat(strings.TrimSpace(s[len(op):]), 64)
	if err != nil {
		return nil, fmt.Errorf("cellformat: invalid condition operand in %q: %w", content, err)
	}
	return &Condition{Op: op, Operand: operand}, nil
}

// Applies reports whether v satisfies the condition.
func (c *Condition) Applies(v float64) bool {
	switch c.Op {
	case "<":
		return v < c.Operand
	case "<=":
		return v <= c.Operand
	case ">":
		return v > c.Operand
	case ">=":
		return v >= c.Operand
	case "=", "==":
		return v == c.Operand
	case "!=", "<>":
		return v != c.Operand
	}
	return false
}

// looksLikeCondition reports whether a bracket content starts a relational
// condition, without validating the operand.
func looksLikeCondition(content string) bool {
	s := strings.TrimSpace(content)
	return s != "" && strings.IndexByte("<>=!", s[0]) >= 0
}
