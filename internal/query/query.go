package query

// Package query projects command output through JMESPath expressions, the same
// way cloud CLIs let users reshape JSON results client-side.

import (
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Evaluator abstracts JMESPath operations for testability.
type Evaluator interface {
	Validate(expr string) error
	Project(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements Evaluator using go-jmespath.
type jmespathLibEvaluator struct{}

// NewEvaluator returns the library-backed Evaluator.
//
//nolint:ireturn // Callers program against the Evaluator interface.
func NewEvaluator() Evaluator {
	return jmespathLibEvaluator{}
}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Project(expr string, data any) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return data, nil
	}
	return jmespath.Search(expr, data)
}
