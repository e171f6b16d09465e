package settings

import (
	"encoding/json"
	"testing"
)

func TestGroupsAreStable(t *testing.T) {
	groups := Groups()
	if len(groups) != 9 {
		t.Fatalf("expected exactly nine groups, got %d", len(groups))
	}

	seen := map[Group]struct{}{}
	for _, info := range groups {
		if info.ID == "" || info.Label == "" {
			t.Fatalf("group missing identity: %+v", info)
		}
		if _, dup := seen[info.ID]; dup {
			t.Fatalf("duplicate group id %q", info.ID)
		}
		seen[info.ID] = struct{}{}
	}
	if groups[0].ID != GroupPersonal || groups[len(groups)-1].ID != GroupAdvanced {
		t.Fatalf("unexpected navigation order: %v ... %v", groups[0].ID, groups[len(groups)-1].ID)
	}
}

func TestDefaultDefinitionsAreWellFormed(t *testing.T) {
	known := map[Group]struct{}{}
	for _, info := range Groups() {
		known[info.ID] = struct{}{}
	}

	keys := map[string]struct{}{}
	for _, def := range DefaultDefinitions() {
		if def.Key == "" || def.Label == "" {
			t.Fatalf("definition missing identity: %+v", def)
		}
		if _, dup := keys[def.Key]; dup {
			t.Fatalf("duplicate catalog key %q", def.Key)
		}
		keys[def.Key] = struct{}{}
		if def.Type != TypePolicy && def.Type != TypePreference {
			t.Fatalf("definition %q has no type", def.Key)
		}
		if _, ok := known[def.Group]; !ok {
			t.Fatalf("definition %q references unknown group %q", def.Key, def.Group)
		}
		if def.Default == nil {
			t.Fatalf("definition %q must carry a default", def.Key)
		}
		if def.AllowedScopes.IsEmpty() {
			t.Fatalf("definition %q must allow at least one scope", def.Key)
		}
	}
}

func TestDefaultRegistryResolvesAndValidates(t *testing.T) {
	registry := NewDefaultRegistry()

	got := registry.Get("personal.ui.theme", Preferences{User: "dark"})
	if got.Value != "dark" || got.Scope != ScopeUser {
		t.Fatalf("unexpected resolution: {%v %s}", got.Value, got.Scope)
	}

	if err := registry.ValidateSet("store.tax.rate", 0.2, ScopeStore); err != nil {
		t.Fatalf("expected in-range tax rate to validate: %v", err)
	}
	if err := registry.ValidateSet("store.tax.rate", 2.0, ScopeStore); err == nil {
		t.Fatalf("expected out-of-range tax rate to be rejected")
	}
	if err := registry.ValidateSet("sell.payments.rounding", "0.05", ScopeStore); err != nil {
		t.Fatalf("expected listed rounding value to validate: %v", err)
	}
	if err := registry.ValidateSet("sell.payments.rounding", "0.25", ScopeStore); err == nil {
		t.Fatalf("expected unlisted rounding value to be rejected")
	}
}

func TestSchemaDocumentShape(t *testing.T) {
	registry := NewDefaultRegistry(WithSchemaVersion(3))
	doc := registry.Schema()

	if doc.Format != SchemaFormatCatalog {
		t.Fatalf("unexpected format %q", doc.Format)
	}
	if doc.SchemaVersion != 3 {
		t.Fatalf("expected schema version 3, got %d", doc.SchemaVersion)
	}
	if len(doc.Groups) != 9 {
		t.Fatalf("expected all nine groups in the document, got %d", len(doc.Groups))
	}

	var personal *GroupSchema
	for i := range doc.Groups {
		if doc.Groups[i].ID == GroupPersonal {
			personal = &doc.Groups[i]
		}
	}
	if personal == nil {
		t.Fatalf("personal group missing from document")
	}
	if len(personal.Settings) < 2 {
		t.Fatalf("expected personal settings in document, got %d", len(personal.Settings))
	}
	for i := 1; i < len(personal.Settings); i++ {
		if personal.Settings[i-1].Key > personal.Settings[i].Key {
			t.Fatalf("settings not sorted by key: %v", personal.Settings)
		}
	}

	var theme *SettingDescriptor
	for i := range personal.Settings {
		if personal.Settings[i].Key == "personal.ui.theme" {
			theme = &personal.Settings[i]
		}
	}
	if theme == nil {
		t.Fatalf("theme descriptor missing")
	}
	if theme.Type != "preference" || !theme.HasValidator {
		t.Fatalf("unexpected theme descriptor: %+v", theme)
	}
	if len(theme.AllowedScopes) != 2 {
		t.Fatalf("expected two allowed scopes, got %v", theme.AllowedScopes)
	}

	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("schema document must serialise: %v", err)
	}
}
