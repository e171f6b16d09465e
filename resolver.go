package settings

import "fmt"

// Get computes the effective value for key from the supplied preferences.
// It is total: unknown keys log a warning and resolve to the configured
// unknown fallback at default scope, never a panic or error. A settings UI
// running against a stale catalog keeps rendering.
//
// Policy settings consider store before user; preference settings consider
// user before store. Either way an override only counts when it is present
// in prefs and its scope is a member of the definition's allowed set.
func (r *Registry) Get(key string, prefs Preferences) Value {
	value, _ := r.resolve(key, prefs, false)
	return value
}

// GetWithTrace resolves key like Get and additionally reports provenance for
// every candidate scope the resolver considered.
func (r *Registry) GetWithTrace(key string, prefs Preferences) (Value, Trace) {
	return r.resolve(key, prefs, true)
}

func (r *Registry) resolve(key string, prefs Preferences, traced bool) (Value, Trace) {
	def, ok := r.items[key]
	if !ok {
		r.logger().LogWarning(LogEvent{
			Op:      OpResolve,
			Key:     key,
			Message: fmt.Sprintf("setting %q not registered, resolving to default scope", key),
		})
		value := Value{Value: r.cfg.unknownFallback, Scope: ScopeDefault}
		if !traced {
			return value, Trace{}
		}
		trace := newTrace(key, value)
		trace.Registered = false
		return value, trace
	}

	var order [2]Scope
	switch def.Type {
	case TypePreference:
		order = [2]Scope{ScopeUser, ScopeStore}
	default:
		// Policy order also covers definitions registered without a type:
		// store stays in charge until the catalog says otherwise.
		order = [2]Scope{ScopeStore, ScopeUser}
	}

	var trace Trace
	selected := Value{Value: def.Default, Scope: ScopeDefault}
	found := false
	for _, scope := range order {
		candidate, present := prefs.at(scope)
		allowed := def.AllowedScopes.Has(scope)
		picked := !found && present && allowed
		if picked {
			selected = Value{Value: candidate, Scope: scope}
			found = true
		}
		if traced {
			trace.Candidates = append(trace.Candidates, Candidate{
				Scope:    scope,
				Value:    candidate,
				Present:  present,
				Allowed:  allowed,
				Selected: picked,
			})
		}
	}

	if traced {
		trace.Candidates = append(trace.Candidates, Candidate{
			Scope:    ScopeDefault,
			Value:    def.Default,
			Present:  true,
			Allowed:  true,
			Selected: !found,
		})
		trace = finishTrace(trace, key, selected)
	}
	return selected, trace
}
