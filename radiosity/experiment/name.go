package experiment

import (
	"math/rand/v2"
	"time"
)

var (
	adjectives = []string{
		"amber", "ashen", "bright", "burnished", "candid", "clear", "diffuse",
		"dim", "dusky", "faint", "gilded", "glossy", "golden", "hazy", "hushed",
		"lambent", "low", "lucid", "matte", "mellow", "milky", "misty", "muted",
		"opal", "pale", "pearly", "radiant", "rosy", "russet", "scattered",
		"sheer", "silver", "slanted", "soft", "somber", "stark", "steady",
		"subdued", "sunlit", "tawny", "tinted", "umber", "veiled", "warm", "wan",
	}

	nouns = []string{
		"aperture", "atrium", "beam", "bounce", "canopy", "cathedral", "chapel",
		"cloister", "corner", "corridor", "courtyard", "dome", "dusk", "facet",
		"gallery", "glare", "glow", "hall", "halo", "lantern", "loft", "lumen",
		"mirror", "niche", "nook", "pane", "prism", "quad", "ray", "ridge",
		"room", "shade", "skylight", "spectrum", "studio", "surface", "tile",
		"vault", "veil", "wall", "window",
	}
)

// GenerateExperimentName creates a memorable "adjective-noun" identifier
func GenerateExperimentName() string {
	return adjectives[rand.IntN(len(adjectives))] + "-" + nouns[rand.IntN(len(nouns))]
}

// GenerateExperimentID appends a UTC timestamp to a memorable name
func GenerateExperimentID() string {
	return GenerateExperimentName() + "-" + time.Now().UTC().Format("20060102-150405")
}
