package roles

// Level orders categories for display grouping only; it carries no
// business meaning beyond sort order.
type Level string

const (
	LevelExecutive  Level = "Executive"
	LevelManagement Level = "Management"
	LevelSenior     Level = "Senior"
	LevelMid        Level = "Mid"
	LevelJunior     Level = "Junior"
	LevelEntry      Level = "Entry"
	LevelSupport    Level = "Support"
)

// Category is one of the canonical kitchen job-title buckets. Icon and
// Color are display hints consumed by the dashboard UI.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Level Level  `json:"level"`
}

// The 21 canonical categories.
var (
	ExecutiveChef     = Category{Name: "Executive Chef", Icon: "👨‍🍳", Color: "#b91c1c", Level: LevelExecutive}
	ExecutiveSousChef = Category{Name: "Executive Sous Chef", Icon: "👨‍🍳", Color: "#dc2626", Level: LevelExecutive}
	HeadChef          = Category{Name: "Head Chef", Icon: "🎖️", Color: "#ea580c", Level: LevelManagement}
	SousChef          = Category{Name: "Sous Chef", Icon: "🥇", Color: "#f97316", Level: LevelManagement}
	ChiefSteward      = Category{Name: "Chief Steward", Icon: "🧹", Color: "#0369a1", Level: LevelManagement}
	PastryChef        = Category{Name: "Pastry Chef", Icon: "🍰", Color: "#db2777", Level: LevelSenior}
	HeadBaker         = Category{Name: "Head Baker", Icon: "🥖", Color: "#a16207", Level: LevelSenior}
	ChefDePartie      = Category{Name: "Chef de Partie", Icon: "🍳", Color: "#ca8a04", Level: LevelSenior}
	DemiChefDePartie  = Category{Name: "Demi Chef de Partie", Icon: "🍳", Color: "#eab308", Level: LevelMid}
	LineCook          = Category{Name: "Line Cook", Icon: "🔪", Color: "#16a34a", Level: LevelMid}
	Baker             = Category{Name: "Baker", Icon: "🥐", Color: "#d97706", Level: LevelMid}
	Butcher           = Category{Name: "Butcher", Icon: "🥩", Color: "#991b1b", Level: LevelMid}
	Commi1            = Category{Name: "Commi 1", Icon: "🧑‍🍳", Color: "#059669", Level: LevelJunior}
	Commi2            = Category{Name: "Commi 2", Icon: "🧑‍🍳", Color: "#10b981", Level: LevelJunior}
	Commi3            = Category{Name: "Commi 3", Icon: "🧑‍🍳", Color: "#34d399", Level: LevelJunior}
	PrepCook          = Category{Name: "Prep Cook", Icon: "🥗", Color: "#22c55e", Level: LevelJunior}
	KitchenHelper     = Category{Name: "Kitchen Helper", Icon: "🤝", Color: "#64748b", Level: LevelEntry}
	Trainee           = Category{Name: "Trainee", Icon: "📘", Color: "#94a3b8", Level: LevelEntry}
	KitchenPorter     = Category{Name: "Kitchen Porter", Icon: "🧽", Color: "#475569", Level: LevelSupport}
	Steward           = Category{Name: "Steward", Icon: "🫧", Color: "#0284c7", Level: LevelSupport}
)

// HotKitchenStaff is the generic fallback for unmatched kitchen titles.
// It counts as one of the 21 canonical categories.
var HotKitchenStaff = Category{Name: "Hot Kitchen Staff", Icon: "🔥", Color: "#6b7280", Level: LevelMid}

// All lists every canonical category, fallback included, for display
// enumeration.
func All() []Category {
	return []Category{
		ExecutiveChef, ExecutiveSousChef, HeadChef, SousChef, ChiefSteward,
		PastryChef, HeadBaker, ChefDePartie, DemiChefDePartie, LineCook,
		Baker, Butcher, Commi1, Commi2, Commi3, PrepCook,
		KitchenHelper, Trainee, KitchenPorter, Steward, HotKitchenStaff,
	}
}
