package settings

import (
	"errors"
	"fmt"
	"strings"
)

// RuleError captures rule engine metadata alongside the originating error.
type RuleError struct {
	Engine string
	Expr   string
	Scope  string
	Err    error
}

func (e *RuleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("settings: %s rule %s scope=%s: %v", e.Engine, describeExpression(e.Expr), e.Scope, e.Err)
}

func (e *RuleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEngineError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "settings:") {
		return err
	}
	return fmt.Errorf("settings: %s rule engine: %w", engine, err)
}

func wrapRuleError(engine, expr, scope string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		if ruleErr.Engine == "" {
			ruleErr.Engine = engine
		}
		if ruleErr.Expr == "" {
			ruleErr.Expr = expr
		}
		if ruleErr.Scope == "" {
			ruleErr.Scope = scope
		}
		return ruleErr
	}

	return &RuleError{
		Engine: engine,
		Expr:   expr,
		Scope:  scope,
		Err:    err,
	}
}
