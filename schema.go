package settings

import "sort"

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

// SchemaFormatCatalog represents the grouped catalog descriptor document.
const SchemaFormatCatalog SchemaFormat = "catalog"

// SchemaDocument is the JSON-serialisable description of a registry's
// catalog, grouped for UI navigation.
type SchemaDocument struct {
	Format        SchemaFormat  `json:"format"`
	SchemaVersion int           `json:"schema_version"`
	Groups        []GroupSchema `json:"groups"`
}

// GroupSchema pairs a catalog group with the descriptors registered under it.
type GroupSchema struct {
	GroupInfo
	Settings []SettingDescriptor `json:"settings,omitempty"`
}

// SettingDescriptor is the flattened, display-ready view of one definition.
// Validators are closures and cannot travel; only their presence is exposed.
type SettingDescriptor struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Description   string   `json:"description,omitempty"`
	Type          string   `json:"type"`
	Default       any      `json:"default"`
	AllowedScopes []string `json:"allowed_scopes"`
	HasValidator  bool     `json:"has_validator,omitempty"`
	Rule          string   `json:"rule,omitempty"`
	SchemaVersion int      `json:"schema_version,omitempty"`
}

// Schema generates the catalog document for every registered definition,
// groups in navigation order and settings sorted by key within each group.
func (r *Registry) Schema() SchemaDocument {
	byGroup := make(map[Group][]SettingDescriptor)
	for _, def := range r.items {
		byGroup[def.Group] = append(byGroup[def.Group], describeDefinition(def))
	}

	doc := SchemaDocument{
		Format:        SchemaFormatCatalog,
		SchemaVersion: r.SchemaVersion(),
	}
	for _, info := range Groups() {
		descriptors := byGroup[info.ID]
		sort.Slice(descriptors, func(i, j int) bool {
			return descriptors[i].Key < descriptors[j].Key
		})
		doc.Groups = append(doc.Groups, GroupSchema{
			GroupInfo: info,
			Settings:  descriptors,
		})
	}
	return doc
}

func describeDefinition(def Definition) SettingDescriptor {
	scopes := def.AllowedScopes.Scopes()
	names := make([]string, len(scopes))
	for i, scope := range scopes {
		names[i] = scope.String()
	}
	return SettingDescriptor{
		Key:           def.Key,
		Label:         def.Label,
		Description:   def.Description,
		Type:          def.Type.String(),
		Default:       def.Default,
		AllowedScopes: names,
		HasValidator:  def.Validator != nil,
		Rule:          def.Rule,
		SchemaVersion: def.SchemaVersion,
	}
}
