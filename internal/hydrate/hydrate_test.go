package hydrate

import (
	"fmt"
	"testing"
	"time"
)

func TestCoerceWeakTyping(t *testing.T) {
	decoder := NewDecoder()

	cases := []struct {
		name      string
		raw       any
		prototype any
		want      any
	}{
		{"string to float", "0.08", 0.0, 0.08},
		{"string to int", "42", 0, 42},
		{"string to bool", "true", false, true},
		{"float to int", 3.0, 0, 3},
		{"already typed", 0.5, 0.0, 0.5},
		{"no prototype", "raw", nil, "raw"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := decoder.Coerce("k", tc.raw, tc.prototype)
			if err != nil {
				t.Fatalf("coerce failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %T %v, got %T %v", tc.want, tc.want, got, got)
			}
		})
	}
}

func TestCoerceNilRawPassesThrough(t *testing.T) {
	decoder := NewDecoder()
	got, err := decoder.Coerce("k", nil, 0.0)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil passthrough, got %v", got)
	}
}

func TestCoerceDurationHook(t *testing.T) {
	decoder := NewDecoder()
	got, err := decoder.Coerce("k", "5m", time.Duration(0))
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if got != 5*time.Minute {
		t.Fatalf("expected 5m duration, got %v", got)
	}
}

func TestCoerceFailureSurfacesKey(t *testing.T) {
	decoder := NewDecoder()
	_, err := decoder.Coerce("queue.limit", "not-a-number", 0)
	if err == nil {
		t.Fatalf("expected coercion failure")
	}
}

func TestPreHookRunsBeforeCoercion(t *testing.T) {
	decoder := NewDecoder(WithPreHook(func(key string, raw any) (any, error) {
		if s, ok := raw.(string); ok {
			return s + "8", nil
		}
		return raw, nil
	}))

	got, err := decoder.Coerce("k", "0.0", 0.0)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if got != 0.08 {
		t.Fatalf("expected pre-hook to run, got %v", got)
	}
}

func TestPreHookErrorStopsCoercion(t *testing.T) {
	decoder := NewDecoder(WithPreHook(func(key string, raw any) (any, error) {
		return nil, fmt.Errorf("bad row")
	}))

	if _, err := decoder.Coerce("k", "x", ""); err == nil {
		t.Fatalf("expected pre-hook error to surface")
	}
}
