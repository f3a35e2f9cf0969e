package scene

// Descriptor is one narrative beat of the cinematic: how long it holds the
// screen, what it says, and the palette every draw pass pulls from.
// All color fields are "#rrggbb" hex triplets.
type Descriptor struct {
	ID         string
	Label      string
	DurationMS float64
	Narrative  string

	SkyTop    string
	SkyBottom string

	GroundTop    string
	GroundBottom string

	// Accents cycle through orbs, clouds, waves and aurora ribbons.
	// Always 3 or more entries.
	Accents []string
}

// catalog is the fixed story order. Durations sum to 34500 ms; the order is
// the narrative sequence and must not be re-sorted.
var catalog = []Descriptor{
	{
		ID:           "violet-hush",
		Label:        "Violet Hush",
		DurationMS:   8000,
		Narrative:    "The day lets go. A violet quiet settles over the water.",
		SkyTop:       "#120d2e",
		SkyBottom:    "#58387a",
		GroundTop:    "#241a42",
		GroundBottom: "#0d0a1f",
		Accents:      []string{"#ff9ed9", "#9d8cff", "#58c7f0"},
	},
	{
		ID:           "spark-drift",
		Label:        "Spark & Drift",
		DurationMS:   7000,
		Narrative:    "Drift wakes between the first stars, trailing sparks.",
		SkyTop:       "#0b1030",
		SkyBottom:    "#35477d",
		GroundTop:    "#1b2547",
		GroundBottom: "#0a0e22",
		Accents:      []string{"#ffd27f", "#ff9ed9", "#7fe3ff", "#b49dff"},
	},
	{
		ID:           "tidelight",
		Label:        "Tidelight",
		DurationMS:   6500,
		Narrative:    "The tide carries lanterns of green and gold.",
		SkyTop:       "#0a1f33",
		SkyBottom:    "#2a6b7c",
		GroundTop:    "#123447",
		GroundBottom: "#05141f",
		Accents:      []string{"#6ff0c8", "#58c7f0", "#f0e68c"},
	},
	{
		ID:           "aurora-veil",
		Label:        "Aurora Veil",
		DurationMS:   6000,
		Narrative:    "Ribbons of light unfold and breathe above the ridge.",
		SkyTop:       "#070d21",
		SkyBottom:    "#16324a",
		GroundTop:    "#0e2235",
		GroundBottom: "#040912",
		Accents:      []string{"#7fffc8", "#58f0a0", "#9d8cff", "#ff9ed9"},
	},
	{
		ID:           "first-light",
		Label:        "First Light",
		DurationMS:   7000,
		Narrative:    "Dawn warms the horizon. Drift turns home, glowing.",
		SkyTop:       "#33255c",
		SkyBottom:    "#f2a65e",
		GroundTop:    "#3a2b52",
		GroundBottom: "#140d28",
		Accents:      []string{"#ffd27f", "#ffb3a3", "#ff9ed9"},
	},
}

// Catalog returns the scene list in narrative order. Callers must treat the
// returned slice as read-only.
func Catalog() []Descriptor { return catalog }

// TotalDurationMS is the length of one full timeline loop.
func TotalDurationMS() float64 {
	total := 0.0
	for _, sc := range catalog {
		total += sc.DurationMS
	}
	return total
}
