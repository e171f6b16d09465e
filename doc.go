// Package settings implements the scoped settings resolution engine behind a
// retail/POS admin console: a definition catalog, a precedence resolver and
// a write-path validator.
//
// A Registry owns static setting definitions. Callers resolve effective
// values by handing the registry a per-call Preferences bag sourced from
// their own persistence:
//
//	value := registry.Get("store.tax.rate", settings.Preferences{Store: 0.08})
//	// value.Value == 0.08, value.Scope == settings.ScopeStore
//
// Policy settings resolve store before user; preference settings resolve
// user before store; both fall back to the definition default. An override
// only participates when its scope is in the definition's allowed set.
//
// Reads are total: unknown keys resolve to a default-scoped fallback with a
// logged warning so UIs on a stale catalog keep working. Writes are strict:
// ValidateSet fails loudly on unknown keys, disallowed scopes and rejected
// values. The registry never persists anything; after Set succeeds the
// caller hands (key, value, scope) to its own store (see pkg/store for the
// persistence-facing contracts).
//
// Responsibilities:
//   - Registry: registration, lookup, grouping, search, schema document.
//   - Resolver: Get/GetWithTrace precedence with provenance.
//   - Validator: ValidateSet/Set with structured errors, custom Validator
//     predicates and expression rules (expr, CEL, optional JS engines).
//
// Data flow:
//
//	store rows -> DecodePreferences -> Get -> Value{value, scope}
//	proposed write -> ValidateSet -> caller persists -> activity hooks
package settings
