// Package store defines persistence-facing contracts for loading and saving
// per-scope setting overrides, plus a small loader that sources raw rows,
// hydrates them into a preferences bag and delegates resolution and write
// validation to the core settings registry.
//
// The core settings package stays persistence-agnostic; everything durable
// lives behind Store implementations supplied by consumers (a key-value
// settings table, local profile storage, a remote API).
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	settings "github.com/goliatone/go-settings"
)

// ErrETagMismatch indicates an optimistic concurrency conflict during Save.
var ErrETagMismatch = errors.New("store: etag mismatch")

// Ref identifies one persisted override: a setting key at a scope owned by a
// store or user.
type Ref struct {
	Key     string
	Scope   settings.Scope
	OwnerID string
}

// Meta is storage-owned metadata used for concurrency control and tracing.
type Meta struct {
	ETag      string            `json:"etag,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Identifier returns the deterministic storage key for the reference
// (e.g., "user/123/personal.ui.theme"). Only store and user scopes are
// persistable; defaults live in the catalog.
func (r Ref) Identifier() (string, error) {
	if r.Key == "" {
		return "", fmt.Errorf("store: key is required")
	}
	switch r.Scope {
	case settings.ScopeStore, settings.ScopeUser:
		if r.OwnerID == "" {
			return "", fmt.Errorf("store: owner id is required for scope %q", r.Scope)
		}
		return fmt.Sprintf("%s/%s/%s", r.Scope, r.OwnerID, r.Key), nil
	default:
		return "", fmt.Errorf("store: unsupported scope %q", r.Scope)
	}
}

// Store loads and saves one raw override value for a single reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (value any, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, value any, meta Meta) (Meta, error)
}

// Loader orchestrates scoped loads against a Store and hands resolution and
// write validation to the registry.
type Loader struct {
	Registry *settings.Registry
	Store    Store
	StoreID  string
	UserID   string
}

// Resolve loads the store and user rows for key, hydrates them into a
// preferences bag and resolves. Missing rows simply leave their scope empty;
// load failures are surfaced because they are infrastructure errors, not
// schema skew.
func (l Loader) Resolve(ctx context.Context, key string) (settings.Value, error) {
	prefs, err := l.loadPreferences(ctx, key)
	if err != nil {
		return settings.Value{}, err
	}
	return l.Registry.Get(key, prefs), nil
}

// ResolveWithTrace behaves like Resolve and reports provenance.
func (l Loader) ResolveWithTrace(ctx context.Context, key string) (settings.Value, settings.Trace, error) {
	prefs, err := l.loadPreferences(ctx, key)
	if err != nil {
		return settings.Value{}, settings.Trace{}, err
	}
	value, trace := l.Registry.GetWithTrace(key, prefs)
	return value, trace, nil
}

// Save validates the write through the registry, enforces the caller's ETag
// when one is supplied and persists the value on success.
func (l Loader) Save(ctx context.Context, key string, value any, scope settings.Scope, meta Meta) (Meta, error) {
	if l.Store == nil {
		return Meta{}, fmt.Errorf("store: store is required")
	}
	if l.Registry == nil {
		return Meta{}, fmt.Errorf("store: registry is required")
	}

	ref, err := l.ref(key, scope)
	if err != nil {
		return Meta{}, err
	}

	_, loadedMeta, ok, err := l.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("store: load %q for scope %q: %w", key, scope, err)
	}
	if ok && meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := l.Registry.Set(ctx, key, value, scope); err != nil {
		return loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	if saveMeta.UpdatedAt.IsZero() {
		saveMeta.UpdatedAt = time.Now()
	}
	savedMeta, err := l.Store.Save(ctx, ref, value, saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("store: save %q for scope %q: %w", key, scope, err)
	}
	return savedMeta, nil
}

func (l Loader) loadPreferences(ctx context.Context, key string) (settings.Preferences, error) {
	if l.Store == nil {
		return settings.Preferences{}, fmt.Errorf("store: store is required")
	}
	if l.Registry == nil {
		return settings.Preferences{}, fmt.Errorf("store: registry is required")
	}

	raw := map[string]any{}
	for _, scope := range []settings.Scope{settings.ScopeStore, settings.ScopeUser} {
		ref, err := l.ref(key, scope)
		if err != nil {
			continue
		}
		value, _, ok, err := l.Store.Load(ctx, ref)
		if err != nil {
			return settings.Preferences{}, fmt.Errorf("store: load %q for scope %q: %w", key, scope, err)
		}
		if ok {
			raw[scope.String()] = value
		}
	}
	return l.Registry.DecodePreferences(key, raw)
}

func (l Loader) ref(key string, scope settings.Scope) (Ref, error) {
	ref := Ref{Key: key, Scope: scope}
	switch scope {
	case settings.ScopeStore:
		ref.OwnerID = l.StoreID
	case settings.ScopeUser:
		ref.OwnerID = l.UserID
	}
	if _, err := ref.Identifier(); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
