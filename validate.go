package settings

import (
	"context"
	"time"

	"github.com/goliatone/go-settings/pkg/activity"
)

// ValidateSet checks whether writing value for key at scope would be
// semantically valid. Unlike Get this path is strict: an unknown key is a
// caller bug and fails loudly; accepting an invalid write would corrupt
// durable state owned outside this package.
func (r *Registry) ValidateSet(key string, value any, scope Scope) error {
	def, ok := r.items[key]
	if !ok {
		return &UnknownSettingError{Key: key}
	}
	if !def.AllowedScopes.Has(scope) {
		return &InvalidScopeError{Key: key, Scope: scope, Allowed: def.AllowedScopes}
	}
	if def.Validator != nil && !def.Validator(value) {
		return &ValidationError{Key: key, Value: value}
	}
	if def.Rule != "" {
		result, err := r.evaluateRule(def, value, scope)
		if err != nil {
			return &ValidationError{Key: key, Value: value, Err: err}
		}
		if !truthy(result) {
			return &ValidationError{Key: key, Value: value}
		}
	}
	return nil
}

// Set validates the proposed write and notifies any configured change hooks.
// It performs no persistence: on success the caller is responsible for
// invoking its store with (key, value, scope). The registry only knows
// whether a write would be valid, never where values live.
func (r *Registry) Set(ctx context.Context, key string, value any, scope Scope) error {
	if err := r.ValidateSet(key, value, scope); err != nil {
		return err
	}
	if r.cfg.activityHooks.Enabled() {
		return r.cfg.activityHooks.Notify(ctx, activity.Event{
			Verb:       activity.VerbSet,
			Key:        key,
			Scope:      scope.String(),
			Value:      value,
			OccurredAt: time.Now(),
		})
	}
	return nil
}

// ActivityHooks returns a cloned slice of the change hooks configured on the
// registry. The returned slice can be safely mutated by the caller.
func (r *Registry) ActivityHooks() activity.Hooks {
	if r == nil {
		return nil
	}
	return cloneActivityHooks(r.cfg.activityHooks)
}

func (r *Registry) evaluateRule(def Definition, value any, scope Scope) (any, error) {
	evaluator := r.ruleEvaluator()
	ctx := RuleContext{
		Key:   def.Key,
		Value: value,
		Scope: scope,
	}
	return evaluator.Evaluate(ctx, def.Rule)
}

// ruleEvaluator returns the engine fixed at construction time. New always
// installs one, so validation never mutates registry state and stays safe
// for concurrent callers.
func (r *Registry) ruleEvaluator() Evaluator {
	return r.cfg.evaluator
}

// truthy interprets a rule result as a predicate outcome. Engines return
// typed booleans in the common case; nil and false are the only rejections.
func truthy(result any) bool {
	switch typed := result.(type) {
	case nil:
		return false
	case bool:
		return typed
	default:
		return true
	}
}
