package settings

import "github.com/goliatone/go-settings/pkg/activity"

// Validator is a predicate run against a proposed value before a write is
// accepted. A nil Validator accepts everything.
type Validator func(value any) bool

// Definition is the static metadata record for one configurable key.
type Definition struct {
	// Key uniquely identifies the setting. Keys are stable and never reused
	// for a different meaning.
	Key string

	// Label and Description are display metadata, opaque to the resolver but
	// indexed by Search.
	Label       string
	Description string

	// Type selects the precedence order applied during resolution.
	Type SettingType

	// Group places the definition in one of the fixed catalog groups.
	Group Group

	// Default is the typed fallback value. Resolution never returns an
	// undefined value; absent any valid override this is the answer.
	Default any

	// AllowedScopes lists the scopes at which a value may legitimately exist.
	// Overrides outside the set are skipped during resolution and rejected
	// during writes. Including ScopeDefault marks the definition as settable
	// at the default tier; the resolver still never selects default as an
	// override.
	AllowedScopes ScopeSet

	// Validator, when set, must accept a value before ValidateSet passes.
	Validator Validator

	// Rule is an optional expression evaluated by the registry's rule engine
	// with the proposed value bound; a falsy or failing rule rejects the
	// write. Rule and Validator compose, both must pass.
	Rule string

	// SchemaVersion tags the definition for future migration tooling. The
	// core does not interpret it.
	SchemaVersion int
}

// Preferences is the per-resolution input bag of raw override values. The
// caller sources both fields from wherever values are durably kept; nil means
// no override exists at that scope.
type Preferences struct {
	Store any
	User  any
}

// at returns the override held at scope and whether one is present.
func (p Preferences) at(scope Scope) (any, bool) {
	switch scope {
	case ScopeStore:
		return p.Store, p.Store != nil
	case ScopeUser:
		return p.User, p.User != nil
	default:
		return nil, false
	}
}

// Value is the resolution output: the effective value plus the scope that
// produced it.
type Value struct {
	Value any   `json:"value"`
	Scope Scope `json:"scope"`
}

// Option configures a Registry at construction time.
type Option func(*registryConfig)

type registryConfig struct {
	logger          Logger
	schemaVersion   int
	unknownFallback any
	evaluator       Evaluator
	ruleCache       ProgramCache
	functions       *FunctionRegistry
	activityHooks   activity.Hooks
	definitions     []Definition
}

func applyOptions(opts []Option) registryConfig {
	cfg := registryConfig{schemaVersion: SchemaVersion}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSchemaVersion overrides the registry-wide schema version counter.
func WithSchemaVersion(version int) Option {
	return func(cfg *registryConfig) {
		cfg.schemaVersion = version
	}
}

// WithDefinitions registers the supplied definitions during construction.
func WithDefinitions(definitions ...Definition) Option {
	return func(cfg *registryConfig) {
		cfg.definitions = append(cfg.definitions, definitions...)
	}
}

// WithUnknownFallback configures the sentinel value returned when resolving a
// key the registry does not know. Defaults to nil.
func WithUnknownFallback(value any) Option {
	return func(cfg *registryConfig) {
		cfg.unknownFallback = value
	}
}

// WithRuleEvaluator configures the engine used to evaluate definition rules.
// When unset New constructs an expr-backed evaluator.
func WithRuleEvaluator(e Evaluator) Option {
	return func(cfg *registryConfig) {
		cfg.evaluator = e
	}
}

// WithRuleCache registers a compiled-program cache shared by rule engines.
func WithRuleCache(cache ProgramCache) Option {
	return func(cfg *registryConfig) {
		cfg.ruleCache = cache
	}
}

// WithFunctions exposes registry functions to rule expressions. The registry
// is cloned so later mutations by the caller are not observed.
func WithFunctions(functions *FunctionRegistry) Option {
	return func(cfg *registryConfig) {
		if functions == nil {
			return
		}
		cfg.functions = functions.Clone()
	}
}

// WithActivityHooks attaches change hooks notified after a successful Set.
// Hooks are cloned and nil entries dropped to preserve immutability.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *registryConfig) {
		cfg.activityHooks = normalized
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
