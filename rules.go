package settings

import (
	"errors"
	"time"
)

// ErrNoEvaluator indicates a rule required an engine and none was available.
var ErrNoEvaluator = errors.New("settings: rule evaluator not configured")

// RuleContext carries the inputs bound into a rule expression: the proposed
// value, the setting key and the scope of the attempted write.
type RuleContext struct {
	Key      string
	Value    any
	Scope    Scope
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) scopeLabel() string {
	if ctx.Scope == ScopeUnknown {
		return "unknown"
	}
	return ctx.Scope.String()
}

// Evaluator executes rule expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// RuleValidator adapts an expression into a plain Validator so a rule can be
// unit-tested or attached to a Definition independently of the registry's
// configured engine. Compilation happens once; evaluation failures reject.
func RuleValidator(evaluator Evaluator, expr string) (Validator, error) {
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	rule, err := evaluator.Compile(expr)
	if err != nil {
		return nil, err
	}
	return func(value any) bool {
		result, err := rule.Evaluate(RuleContext{Value: value})
		if err != nil {
			return false
		}
		return truthy(result)
	}, nil
}
