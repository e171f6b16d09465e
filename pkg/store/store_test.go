package store

import (
	"context"
	"errors"
	"testing"

	settings "github.com/goliatone/go-settings"
)

func newLoader(t *testing.T) Loader {
	t.Helper()
	registry := settings.New(settings.WithDefinitions(
		settings.Definition{
			Key:           "tax.rate",
			Type:          settings.TypePolicy,
			Default:       0.0,
			AllowedScopes: settings.NewScopeSet(settings.ScopeStore),
		},
		settings.Definition{
			Key:           "ui.theme",
			Type:          settings.TypePreference,
			Default:       "light",
			AllowedScopes: settings.NewScopeSet(settings.ScopeUser, settings.ScopeStore),
		},
	))
	return Loader{
		Registry: registry,
		Store:    NewMemoryStore(),
		StoreID:  "store-1",
		UserID:   "user-1",
	}
}

func TestRefIdentifier(t *testing.T) {
	ref := Ref{Key: "ui.theme", Scope: settings.ScopeUser, OwnerID: "123"}
	id, err := ref.Identifier()
	if err != nil {
		t.Fatalf("identifier: %v", err)
	}
	if id != "user/123/ui.theme" {
		t.Fatalf("unexpected identifier %q", id)
	}

	if _, err := (Ref{Key: "k", Scope: settings.ScopeDefault, OwnerID: "x"}).Identifier(); err == nil {
		t.Fatalf("default scope must not be persistable")
	}
	if _, err := (Ref{Key: "k", Scope: settings.ScopeUser}).Identifier(); err == nil {
		t.Fatalf("missing owner must be rejected")
	}
	if _, err := (Ref{Scope: settings.ScopeUser, OwnerID: "x"}).Identifier(); err == nil {
		t.Fatalf("missing key must be rejected")
	}
}

func TestLoaderResolveMissingRowsFallBack(t *testing.T) {
	loader := newLoader(t)

	value, err := loader.Resolve(context.Background(), "ui.theme")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if value.Value != "light" || value.Scope != settings.ScopeDefault {
		t.Fatalf("expected catalog default, got {%v %s}", value.Value, value.Scope)
	}
}

func TestLoaderSaveThenResolve(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	if _, err := loader.Save(ctx, "ui.theme", "dark", settings.ScopeUser, Meta{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	value, err := loader.Resolve(ctx, "ui.theme")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if value.Value != "dark" || value.Scope != settings.ScopeUser {
		t.Fatalf("expected persisted user override, got {%v %s}", value.Value, value.Scope)
	}

	// Store row exists but user override still wins for a preference.
	if _, err := loader.Save(ctx, "ui.theme", "blue", settings.ScopeStore, Meta{}); err != nil {
		t.Fatalf("save store row: %v", err)
	}
	value, err = loader.Resolve(ctx, "ui.theme")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if value.Value != "dark" || value.Scope != settings.ScopeUser {
		t.Fatalf("expected user precedence, got {%v %s}", value.Value, value.Scope)
	}
}

func TestLoaderSaveRejectsInvalidWrites(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	_, err := loader.Save(ctx, "tax.rate", 0.08, settings.ScopeUser, Meta{})
	var scopeErr *settings.InvalidScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("expected InvalidScopeError, got %v", err)
	}

	if _, err := loader.Save(ctx, "unknown.key", 1, settings.ScopeStore, Meta{}); !errors.Is(err, settings.ErrUnknownSetting) {
		t.Fatalf("expected unknown setting error, got %v", err)
	}

	// Nothing was persisted for the rejected writes.
	value, err := loader.Resolve(ctx, "tax.rate")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if value.Scope != settings.ScopeDefault {
		t.Fatalf("rejected write must not persist, got scope %s", value.Scope)
	}
}

func TestLoaderSaveEnforcesETag(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	if _, err := loader.Save(ctx, "ui.theme", "dark", settings.ScopeUser, Meta{ETag: "v1"}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	if _, err := loader.Save(ctx, "ui.theme", "blue", settings.ScopeUser, Meta{ETag: "v0"}); !errors.Is(err, ErrETagMismatch) {
		t.Fatalf("expected etag mismatch, got %v", err)
	}

	if _, err := loader.Save(ctx, "ui.theme", "blue", settings.ScopeUser, Meta{ETag: "v1"}); err != nil {
		t.Fatalf("matching etag must succeed: %v", err)
	}
}

func TestLoaderResolveWithTrace(t *testing.T) {
	loader := newLoader(t)
	ctx := context.Background()

	if _, err := loader.Save(ctx, "ui.theme", "dark", settings.ScopeUser, Meta{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	value, trace, err := loader.ResolveWithTrace(ctx, "ui.theme")
	if err != nil {
		t.Fatalf("resolve with trace: %v", err)
	}
	if value.Scope != settings.ScopeUser {
		t.Fatalf("expected user scope, got %s", value.Scope)
	}
	if trace.ID == "" || trace.Key != "ui.theme" {
		t.Fatalf("unexpected trace: %+v", trace)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ref := Ref{Key: "k", Scope: settings.ScopeStore, OwnerID: "s"}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	meta := Meta{ETag: "v1", Extra: map[string]string{"by": "tester"}}
	saved, err := store.Save(ctx, ref, 42, meta)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	meta.Extra["by"] = "mutated"
	if saved.Extra["by"] != "tester" {
		t.Fatalf("expected meta clone on save")
	}

	value, loaded, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if value != 42 || loaded.ETag != "v1" || loaded.Extra["by"] != "tester" {
		t.Fatalf("unexpected load result: %v %+v", value, loaded)
	}
}
