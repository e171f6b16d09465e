package settings

import (
	"fmt"
	"strings"
)

// SchemaVersion is the process-wide catalog schema counter exposed through
// Registry.SchemaVersion. Bump it when the shipped catalog changes shape.
const SchemaVersion = 1

// Registry owns the definition catalog: registration, lookup, grouping and
// search, plus the resolve and validate operations built on top of it.
//
// Registration is expected to complete before concurrent traffic starts; the
// registry takes no locks of its own. Get, Search, Group and the predicates
// only read the underlying map and may be called freely once the
// registration phase is over. Callers that must register definitions after
// startup have to synchronise externally.
type Registry struct {
	cfg   registryConfig
	items map[string]Definition
}

// New constructs a Registry and registers any definitions supplied through
// WithDefinitions.
func New(opts ...Option) *Registry {
	cfg := applyOptions(opts)
	if cfg.evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if cfg.ruleCache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(cfg.ruleCache))
		}
		if cfg.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
		}
		cfg.evaluator = NewExprEvaluator(exprOpts...)
	}
	r := &Registry{
		cfg:   cfg,
		items: make(map[string]Definition, len(cfg.definitions)),
	}
	for _, def := range cfg.definitions {
		r.Register(def)
	}
	r.cfg.definitions = nil
	return r
}

// Register inserts or overwrites the definition keyed by def.Key. Replacing
// an existing key is legal, last write wins, but is logged as a warning so a
// duplicated catalog entry never disappears silently.
func (r *Registry) Register(def Definition) {
	if _, exists := r.items[def.Key]; exists {
		r.logger().LogWarning(LogEvent{
			Op:      OpRegister,
			Key:     def.Key,
			Message: fmt.Sprintf("setting %q already registered, overwriting", def.Key),
		})
	}
	r.items[def.Key] = def
}

// Definition returns the definition for key and whether it exists.
func (r *Registry) Definition(key string) (Definition, bool) {
	def, ok := r.items[key]
	return def, ok
}

// Definitions returns an unordered snapshot of every registered definition.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.items))
	for _, def := range r.items {
		out = append(out, def)
	}
	return out
}

// Group returns every definition registered under group.
func (r *Registry) Group(group Group) []Definition {
	var out []Definition
	for _, def := range r.items {
		if def.Group == group {
			out = append(out, def)
		}
	}
	return out
}

// Search returns definitions whose key, label or description contains query,
// case-insensitively. A blank or whitespace-only query returns the full
// catalog; that is a documented convenience for list views, not an empty
// result.
func (r *Registry) Search(query string) []Definition {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.Definitions()
	}
	var out []Definition
	for _, def := range r.items {
		if strings.Contains(strings.ToLower(def.Key), query) ||
			strings.Contains(strings.ToLower(def.Label), query) ||
			strings.Contains(strings.ToLower(def.Description), query) {
			out = append(out, def)
		}
	}
	return out
}

// IsPolicySetting reports whether key names a policy setting. Unknown keys
// report false rather than erroring.
func (r *Registry) IsPolicySetting(key string) bool {
	def, ok := r.items[key]
	return ok && def.Type == TypePolicy
}

// IsPreferenceSetting reports whether key names a preference setting.
// Unknown keys report false.
func (r *Registry) IsPreferenceSetting(key string) bool {
	def, ok := r.items[key]
	return ok && def.Type == TypePreference
}

// AllowedScopes returns the scopes at which key may hold a value. Unknown
// keys yield the empty set.
func (r *Registry) AllowedScopes(key string) ScopeSet {
	def, ok := r.items[key]
	if !ok {
		return ScopeSet(0)
	}
	return def.AllowedScopes
}

// SchemaVersion returns the registry-wide schema version counter.
func (r *Registry) SchemaVersion() int {
	return r.cfg.schemaVersion
}

func (r *Registry) logger() Logger {
	if r.cfg.logger != nil {
		return r.cfg.logger
	}
	return noopLogger{}
}
