package settings

// Group identifies one of the fixed catalog groups used by settings UIs for
// navigation. Groups are organisational only; they carry no resolution
// semantics.
type Group string

const (
	GroupPersonal     Group = "personal"
	GroupStore        Group = "store"
	GroupSell         Group = "sell"
	GroupInventory    Group = "inventory"
	GroupCustomers    Group = "customers"
	GroupUsers        Group = "users"
	GroupDevices      Group = "devices"
	GroupIntegrations Group = "integrations"
	GroupAdvanced     Group = "advanced"
)

// GroupInfo is the display record for one catalog group.
type GroupInfo struct {
	ID          Group  `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Groups returns the fixed catalog groups in navigation order. This list is
// static configuration, not computed from registered definitions.
func Groups() []GroupInfo {
	return []GroupInfo{
		{ID: GroupPersonal, Label: "Personal", Description: "Individual operator preferences"},
		{ID: GroupStore, Label: "Store & Tax", Description: "Store profile, currency and tax behaviour"},
		{ID: GroupSell, Label: "Sell & Payments", Description: "Checkout flow and payment handling"},
		{ID: GroupInventory, Label: "Inventory & Products", Description: "Stock tracking and product presentation"},
		{ID: GroupCustomers, Label: "Customers & AR", Description: "Customer accounts and receivables"},
		{ID: GroupUsers, Label: "Users & Security", Description: "Operator access and security posture"},
		{ID: GroupDevices, Label: "Devices & Offline", Description: "Registers, printers and offline behaviour"},
		{ID: GroupIntegrations, Label: "Integrations", Description: "Connected services and sync"},
		{ID: GroupAdvanced, Label: "Advanced", Description: "Low-level switches for support staff"},
	}
}

// DefaultDefinitions returns the catalog seeded into a stock registry. These
// are the defaults a fresh installation ships with; deployments extend or
// replace them through Register.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Key:           "store.tax.rate",
			Label:         "Tax rate",
			Description:   "Sales tax rate applied at checkout",
			Type:          TypePolicy,
			Group:         GroupStore,
			Default:       0.0,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value >= 0.0 && value <= 1.0",
		},
		{
			Key:           "store.tax.inclusive",
			Label:         "Tax-inclusive pricing",
			Description:   "Display prices with tax included",
			Type:          TypePolicy,
			Group:         GroupStore,
			Default:       false,
			AllowedScopes: NewScopeSet(ScopeStore),
		},
		{
			Key:           "sell.discount.max_percent",
			Label:         "Maximum line discount",
			Description:   "Largest discount an operator may apply to a line item",
			Type:          TypePolicy,
			Group:         GroupSell,
			Default:       20,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value >= 0 && value <= 100",
		},
		{
			Key:           "sell.receipt.auto_print",
			Label:         "Auto-print receipts",
			Description:   "Print a receipt after every completed sale",
			Type:          TypePreference,
			Group:         GroupSell,
			Default:       true,
			AllowedScopes: NewScopeSet(ScopeStore, ScopeUser),
		},
		{
			Key:           "sell.payments.rounding",
			Label:         "Cash rounding",
			Description:   "Rounding interval applied to cash payments",
			Type:          TypePolicy,
			Group:         GroupSell,
			Default:       "none",
			AllowedScopes: NewScopeSet(ScopeStore),
			Validator:     OneOf("none", "0.05", "0.10", "0.50", "1.00"),
		},
		{
			Key:           "inventory.negative_stock",
			Label:         "Allow negative stock",
			Description:   "Permit sales that drive on-hand counts below zero",
			Type:          TypePolicy,
			Group:         GroupInventory,
			Default:       false,
			AllowedScopes: NewScopeSet(ScopeStore),
		},
		{
			Key:           "customers.credit.limit",
			Label:         "Default credit limit",
			Description:   "On-account limit for new customers",
			Type:          TypePolicy,
			Group:         GroupCustomers,
			Default:       500.0,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value >= 0.0",
		},
		{
			Key:           "users.session.timeout_minutes",
			Label:         "Session timeout",
			Description:   "Minutes of inactivity before an operator is signed out",
			Type:          TypePolicy,
			Group:         GroupUsers,
			Default:       60,
			AllowedScopes: NewScopeSet(ScopeStore, ScopeUser),
			Rule:          "value >= 5 && value <= 480",
		},
		{
			Key:           "personal.ui.theme",
			Label:         "Theme",
			Description:   "Console colour theme",
			Type:          TypePreference,
			Group:         GroupPersonal,
			Default:       "light",
			AllowedScopes: NewScopeSet(ScopeUser, ScopeStore),
			Validator:     OneOf("light", "dark", "auto"),
		},
		{
			Key:           "personal.ui.compact_grid",
			Label:         "Compact product grid",
			Description:   "Denser product tiles on the sell screen",
			Type:          TypePreference,
			Group:         GroupPersonal,
			Default:       false,
			AllowedScopes: NewScopeSet(ScopeUser),
		},
		{
			Key:           "devices.offline.queue_limit",
			Label:         "Offline queue limit",
			Description:   "Maximum sales buffered while a register is offline",
			Type:          TypePolicy,
			Group:         GroupDevices,
			Default:       100,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value > 0",
		},
		{
			Key:           "integrations.sync.interval_seconds",
			Label:         "Sync interval",
			Description:   "Seconds between background catalog sync runs",
			Type:          TypePolicy,
			Group:         GroupIntegrations,
			Default:       300,
			AllowedScopes: NewScopeSet(ScopeStore),
			Rule:          "value >= 30",
		},
		{
			Key:           "advanced.diagnostics.enabled",
			Label:         "Diagnostics",
			Description:   "Verbose client diagnostics for support sessions",
			Type:          TypePreference,
			Group:         GroupAdvanced,
			Default:       false,
			AllowedScopes: NewScopeSet(ScopeUser, ScopeStore),
		},
	}
}

// NewDefaultRegistry constructs a registry seeded with the stock catalog.
func NewDefaultRegistry(opts ...Option) *Registry {
	return New(append([]Option{WithDefinitions(DefaultDefinitions()...)}, opts...)...)
}

// OneOf builds a Validator accepting exactly the listed values.
func OneOf(allowed ...any) Validator {
	return func(value any) bool {
		for _, candidate := range allowed {
			if candidate == value {
				return true
			}
		}
		return false
	}
}
