package settings

import (
	"errors"
	"fmt"
)

// ErrUnknownSetting is the sentinel wrapped by UnknownSettingError so callers
// can branch with errors.Is without matching the concrete type.
var ErrUnknownSetting = errors.New("settings: unknown setting")

// UnknownSettingError reports a write against a key the registry does not
// know. Reads recover from unknown keys; writes fail loudly because they are
// a caller bug, not a runtime condition to mask.
type UnknownSettingError struct {
	Key string
}

func (e *UnknownSettingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("settings: unknown setting %q", e.Key)
}

func (e *UnknownSettingError) Unwrap() error {
	return ErrUnknownSetting
}

// InvalidScopeError reports a write at a scope the definition does not allow.
// It carries the attempted scope and the full allowed set so callers can
// render an actionable message.
type InvalidScopeError struct {
	Key     string
	Scope   Scope
	Allowed ScopeSet
}

func (e *InvalidScopeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("settings: cannot set %q at scope %s; allowed %s", e.Key, e.Scope, e.Allowed)
}

// ValidationError reports a value the definition's validator or rule
// rejected. Err is non-nil when a rule engine failed rather than returning
// false.
type ValidationError struct {
	Key   string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("settings: invalid value %v for %q: %v", e.Value, e.Key, e.Err)
	}
	return fmt.Sprintf("settings: invalid value %v for %q", e.Value, e.Key)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
