package factors

// Category is one of the four footprint categories. The fixed order below is
// load-bearing: the top-impact scan resolves exact ties in favor of the
// first-listed category.
type Category string

const (
	CategoryDevices Category = "Devices"
	CategoryEWaste  Category = "E-Waste"
	CategoryDigital Category = "Digital Activities"
	CategoryAI      Category = "AI Tools"
)

// Categories returns the four categories in their fixed preference order.
func Categories() []Category {
	return []Category{CategoryDevices, CategoryEWaste, CategoryDigital, CategoryAI}
}

// Archetype is a thematic persona mapped 1:1 to a footprint category.
type Archetype struct {
	Key      string
	Name     string
	Category Category

	// Image is a file reference resolved relative to the asset base path;
	// rendering falls back to the raw reference if resolution fails.
	Image string
}

// archetypes in guess-page order.
var archetypes = []Archetype{
	{
		Key:      "devices",
		Name:     "Lord of the Latest Gadgets",
		Category: CategoryDevices,
		Image:    "lord_of_the_latest_gadgets.png",
	},
	{
		Key:      "ai",
		Name:     "Prompt Pirate, Ruler of the Queries",
		Category: CategoryAI,
		Image:    "prompt_pirate.png",
	},
	{
		Key:      "weee",
		Name:     "Guardian of the Eternal E-Waste Pile",
		Category: CategoryEWaste,
		Image:    "guardian_ewaste.png",
	},
	{
		Key:      "activities",
		Name:     "Master of Endless Streams",
		Category: CategoryDigital,
		Image:    "master_endless_streams.png",
	},
}

// Archetypes returns the personas in display order.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}

// ArchetypeByKey looks up a persona by its key.
func ArchetypeByKey(key string) (Archetype, bool) {
	for _, a := range archetypes {
		if a.Key == key {
			return a, true
		}
	}
	return Archetype{}, false
}

// ArchetypeByCategory returns the persona mapped to a category.
func ArchetypeByCategory(c Category) (Archetype, bool) {
	for _, a := range archetypes {
		if a.Category == c {
			return a, true
		}
	}
	return Archetype{}, false
}
