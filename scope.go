package settings

import (
	"encoding/json"
	"strings"
)

// Scope identifies the tier at which a setting value is held. Stronger tiers
// are not implied by ordering here; precedence depends on the setting type.
type Scope int

const (
	// ScopeUnknown guards against misconfiguration so call sites can detect
	// missing or stale scope metadata.
	ScopeUnknown Scope = iota
	// ScopeDefault represents the built-in fallback tier. It is never an
	// explicit override; the resolver synthesises it when nothing else applies.
	ScopeDefault
	// ScopeStore represents a tenant/shop-wide value.
	ScopeStore
	// ScopeUser represents an individual operator's value.
	ScopeUser
)

func (s Scope) String() string {
	switch s {
	case ScopeDefault:
		return "default"
	case ScopeStore:
		return "store"
	case ScopeUser:
		return "user"
	default:
		return "unknown"
	}
}

// ParseScope converts a string representation into the corresponding Scope.
// Returns ScopeUnknown for unrecognised values.
func ParseScope(value string) Scope {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "default":
		return ScopeDefault
	case "store":
		return ScopeStore
	case "user":
		return ScopeUser
	default:
		return ScopeUnknown
	}
}

// MarshalJSON encodes the scope by name so traces and values stay readable
// on the wire.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a scope name produced by MarshalJSON.
func (s *Scope) UnmarshalJSON(payload []byte) error {
	var name string
	if err := json.Unmarshal(payload, &name); err != nil {
		return err
	}
	*s = ParseScope(name)
	return nil
}

// ScopeSet is a small set of scopes stored as a bitmask.
type ScopeSet uint8

// NewScopeSet builds a set from the supplied scopes, ignoring ScopeUnknown.
func NewScopeSet(scopes ...Scope) ScopeSet {
	var set ScopeSet
	for _, scope := range scopes {
		if scope == ScopeUnknown {
			continue
		}
		set |= 1 << uint(scope)
	}
	return set
}

// Has reports whether scope is a member of the set.
func (s ScopeSet) Has(scope Scope) bool {
	if scope == ScopeUnknown {
		return false
	}
	return s&(1<<uint(scope)) != 0
}

// IsEmpty reports whether the set contains no scopes.
func (s ScopeSet) IsEmpty() bool {
	return s == 0
}

// Scopes returns the members in stable order: default, store, user.
func (s ScopeSet) Scopes() []Scope {
	var out []Scope
	for _, scope := range []Scope{ScopeDefault, ScopeStore, ScopeUser} {
		if s.Has(scope) {
			out = append(out, scope)
		}
	}
	return out
}

func (s ScopeSet) String() string {
	members := s.Scopes()
	names := make([]string, len(members))
	for i, scope := range members {
		names[i] = scope.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

// SettingType determines which scope wins when both store and user overrides
// are present.
type SettingType int

const (
	// TypeUnknown marks an uninitialised or unparseable setting type.
	TypeUnknown SettingType = iota
	// TypePolicy resolves store before user: organisational mandates that an
	// individual operator cannot override unless the store delegates.
	TypePolicy
	// TypePreference resolves user before store: personal ergonomics that
	// honour the operator's choice first.
	TypePreference
)

func (t SettingType) String() string {
	switch t {
	case TypePolicy:
		return "policy"
	case TypePreference:
		return "preference"
	default:
		return "unknown"
	}
}

// ParseSettingType converts a string representation into the corresponding
// SettingType. Returns TypeUnknown for unrecognised values.
func ParseSettingType(value string) SettingType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "policy":
		return TypePolicy
	case "preference":
		return TypePreference
	default:
		return TypeUnknown
	}
}
