package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-settings/pkg/activity"
)

func newWriteRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	defs := []Definition{
		{
			Key:           "ui.theme",
			Type:          TypePreference,
			Default:       "light",
			AllowedScopes: NewScopeSet(ScopeUser, ScopeStore),
			Validator:     OneOf("light", "dark", "blue"),
		},
		{
			Key:           "tax.rate",
			Type:          TypePolicy,
			Default:       0.0,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value >= 0.0 && value <= 1.0",
		},
	}
	return New(append([]Option{WithDefinitions(defs...)}, opts...)...)
}

func TestValidateSetUnknownKeyFailsLoudly(t *testing.T) {
	registry := newWriteRegistry(t)

	err := registry.ValidateSet("does.not.exist", true, ScopeStore)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
	var unknownErr *UnknownSettingError
	if !errors.As(err, &unknownErr) || unknownErr.Key != "does.not.exist" {
		t.Fatalf("expected UnknownSettingError carrying the key, got %v", err)
	}
}

func TestValidateSetRejectsDisallowedScope(t *testing.T) {
	registry := newWriteRegistry(t)

	err := registry.ValidateSet("ui.theme", "dark", ScopeDefault)
	var scopeErr *InvalidScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("expected InvalidScopeError, got %v", err)
	}
	if scopeErr.Key != "ui.theme" || scopeErr.Scope != ScopeDefault {
		t.Fatalf("error must carry key and attempted scope: %+v", scopeErr)
	}
	if !scopeErr.Allowed.Has(ScopeUser) || !scopeErr.Allowed.Has(ScopeStore) || scopeErr.Allowed.Has(ScopeDefault) {
		t.Fatalf("error must carry the full allowed set: %s", scopeErr.Allowed)
	}

	if err := registry.ValidateSet("tax.rate", 0.08, ScopeUser); err == nil {
		t.Fatalf("expected user scope to be rejected for store-only setting")
	}
}

func TestValidateSetRunsCustomValidator(t *testing.T) {
	registry := newWriteRegistry(t)

	if err := registry.ValidateSet("ui.theme", "dark", ScopeUser); err != nil {
		t.Fatalf("expected valid value to pass: %v", err)
	}

	err := registry.ValidateSet("ui.theme", "neon", ScopeUser)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Key != "ui.theme" || validationErr.Value != "neon" {
		t.Fatalf("error must name key and value: %+v", validationErr)
	}
}

func TestValidateSetRunsRule(t *testing.T) {
	registry := newWriteRegistry(t)

	if err := registry.ValidateSet("tax.rate", 0.08, ScopeStore); err != nil {
		t.Fatalf("expected in-range rate to pass: %v", err)
	}

	err := registry.ValidateSet("tax.rate", 1.5, ScopeStore)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for out-of-range rate, got %v", err)
	}
}

func TestValidateSetRuleEngineFailureRejects(t *testing.T) {
	registry := New(WithDefinitions(Definition{
		Key:           "broken.rule",
		Default:       0,
		AllowedScopes: NewScopeSet(ScopeStore),
		Rule:          "value >",
	}))

	err := registry.ValidateSet("broken.rule", 1, ScopeStore)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError wrapping the engine failure, got %v", err)
	}
	if validationErr.Err == nil {
		t.Fatalf("expected the engine error to be preserved")
	}
}

func TestDefaultScopeSettableOnlyWhenDeclared(t *testing.T) {
	registry := New(WithDefinitions(Definition{
		Key:           "seed.value",
		Default:       1,
		AllowedScopes: NewScopeSet(ScopeDefault, ScopeStore),
	}))

	// The definition opted in, so a default-tier write validates.
	if err := registry.ValidateSet("seed.value", 2, ScopeDefault); err != nil {
		t.Fatalf("expected declared default scope to validate: %v", err)
	}

	// Resolution still never selects default as an override.
	got := registry.Get("seed.value", Preferences{Store: 3})
	if got.Value != 3 || got.Scope != ScopeStore {
		t.Fatalf("unexpected resolution: {%v %s}", got.Value, got.Scope)
	}
}

func TestValidateSetConcurrentCallers(t *testing.T) {
	registry := newWriteRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := registry.ValidateSet("tax.rate", 0.08, ScopeStore); err != nil {
					t.Errorf("unexpected validation error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSetValidatesAndNotifiesHooks(t *testing.T) {
	var seen []activity.Event
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		seen = append(seen, event)
		return nil
	})
	registry := newWriteRegistry(t, WithActivityHooks(activity.Hooks{hook}))

	if err := registry.Set(context.Background(), "ui.theme", "dark", ScopeUser); err != nil {
		t.Fatalf("expected valid set to succeed: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one change event, got %d", len(seen))
	}
	if seen[0].Verb != activity.VerbSet || seen[0].Key != "ui.theme" || seen[0].Scope != "user" {
		t.Fatalf("unexpected event payload: %+v", seen[0])
	}

	if err := registry.Set(context.Background(), "ui.theme", "neon", ScopeUser); err == nil {
		t.Fatalf("expected invalid set to fail")
	}
	if len(seen) != 1 {
		t.Fatalf("hooks must not fire for rejected writes, got %d events", len(seen))
	}
}

func TestSetPerformsNoPersistence(t *testing.T) {
	registry := newWriteRegistry(t)

	if err := registry.Set(context.Background(), "ui.theme", "dark", ScopeUser); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// The registry holds definitions only; resolution without overrides still
	// answers from the default.
	got := registry.Get("ui.theme", Preferences{})
	if got.Value != "light" || got.Scope != ScopeDefault {
		t.Fatalf("set must not mutate resolution state, got {%v %s}", got.Value, got.Scope)
	}
}
