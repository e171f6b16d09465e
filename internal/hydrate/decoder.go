// Package hydrate coerces raw persisted override values into the Go type a
// definition's default establishes. External stores frequently keep settings
// as strings or loosely typed JSON; resolution wants typed candidates.
package hydrate

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// PreHook lets callers normalise a raw value before coercion.
type PreHook func(key string, raw any) (any, error)

// Decoder coerces raw override values using a prototype value as the target
// type. Weak typing is deliberate: "0.08" from a varchar column should land
// as float64 when the default is float64.
type Decoder struct {
	preHooks []PreHook
}

// Option configures a Decoder instance.
type Option func(*Decoder)

// WithPreHook applies hook prior to coercion.
func WithPreHook(hook PreHook) Option {
	return func(d *Decoder) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// NewDecoder constructs a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Coerce converts raw into the type of prototype. A nil prototype or nil raw
// passes through unchanged.
func (d *Decoder) Coerce(key string, raw, prototype any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	current := raw
	for _, hook := range d.preHooks {
		next, err := hook(key, current)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre-hook for %q failed: %w", key, err)
		}
		current = next
	}

	if prototype == nil {
		return current, nil
	}

	targetType := reflect.TypeOf(prototype)
	if reflect.TypeOf(current) == targetType {
		return current, nil
	}

	target := reflect.New(targetType)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target.Interface(),
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("hydrate: build decoder for %q: %w", key, err)
	}
	if err := decoder.Decode(current); err != nil {
		return nil, fmt.Errorf("hydrate: coerce %q from %T to %s: %w", key, current, targetType, err)
	}
	return target.Elem().Interface(), nil
}
