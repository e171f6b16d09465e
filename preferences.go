package settings

import (
	"fmt"

	"github.com/goliatone/go-settings/internal/hydrate"
)

// DecodePreferences assembles a Preferences bag from raw per-scope rows as
// an external store hands them over, keyed by scope name. Values are coerced
// to the type of the definition's default, so a "0.08" varchar row becomes a
// float64 candidate. Rows at unrecognised scope names are skipped.
//
// Like Get, this is lenient about unknown keys: the raw values pass through
// untyped with a warning, so a stale client keeps functioning. Coercion
// failures are returned because they indicate corrupt rows, not schema skew.
func (r *Registry) DecodePreferences(key string, raw map[string]any) (Preferences, error) {
	var prototype any
	def, ok := r.items[key]
	if ok {
		prototype = def.Default
	} else {
		r.logger().LogWarning(LogEvent{
			Op:      OpResolve,
			Key:     key,
			Message: fmt.Sprintf("setting %q not registered, decoding preferences without coercion", key),
		})
	}

	decoder := hydrate.NewDecoder()
	var prefs Preferences
	for name, value := range raw {
		scope := ParseScope(name)
		if scope != ScopeStore && scope != ScopeUser {
			continue
		}
		coerced, err := decoder.Coerce(key, value, prototype)
		if err != nil {
			return Preferences{}, err
		}
		switch scope {
		case ScopeStore:
			prefs.Store = coerced
		case ScopeUser:
			prefs.User = coerced
		}
	}
	return prefs, nil
}
