package locations

import "math/rand"

// Name and description pools per location type, in the spirit of a
// sleepy Mediterranean island.
var namePools = map[Type][]string{
	TypeVillage: {
		"Olive Grove Village", "Fisher's Rest", "Goat Path Town",
		"Harbor View", "Vineyard Settlement", "Shepherd's Haven",
	},
	TypeRuins: {
		"Temple of Poseidon", "Ancient Agora", "Forgotten Shrine",
		"Old Amphitheater", "Lost Library", "Marble Columns",
	},
	TypeViewpoint: {
		"Eagle's Perch", "Sunset Point", "Azure Overlook",
		"Cloud Watch", "Sea Vista", "Island Peak",
	},
	TypeBeach: {
		"Golden Sands", "Shell Cove", "Crystal Bay",
		"Pebble Beach", "Hidden Lagoon", "Dolphin Shore",
	},
	TypeGrove: {
		"Ancient Olive Grove", "Citrus Garden", "Pine Haven",
		"Fig Tree Grove", "Cypress Walk", "Laurel Woods",
	},
}

var descriptionPools = map[Type][]string{
	TypeVillage: {
		"A peaceful village nestled among olive trees.",
		"A small settlement with white-washed houses.",
		"A quiet fishing village by the coast.",
	},
	TypeRuins: {
		"Ancient marble columns reach skyward.",
		"Weathered stone walls tell tales of the past.",
		"Moss-covered ruins of an ancient civilization.",
	},
	TypeViewpoint: {
		"A breathtaking view of the island and sea.",
		"The perfect spot to watch the sunset.",
		"A panoramic vista of the surrounding waters.",
	},
	TypeBeach: {
		"Crystal clear waters lap at golden sand.",
		"A secluded cove with gentle waves.",
		"A pristine beach with scattered seashells.",
	},
	TypeGrove: {
		"Ancient olive trees provide cool shade.",
		"A peaceful grove filled with birdsong.",
		"Fragrant citrus trees line winding paths.",
	},
}

// namer hands out names per type, avoiding repeats until a pool is
// exhausted.
type namer struct {
	rng  *rand.Rand
	used map[string]bool
}

func newNamer(rng *rand.Rand) *namer {
	return &namer{rng: rng, used: make(map[string]bool)}
}

func (n *namer) name(t Type) string {
	pool := namePools[t]
	// Prefer an unused name; after the pool drains, reuse is fine.
	for attempt := 0; attempt < len(pool); attempt++ {
		candidate := pool[n.rng.Intn(len(pool))]
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
	return pool[n.rng.Intn(len(pool))]
}

func (n *namer) description(t Type) string {
	pool := descriptionPools[t]
	return pool[n.rng.Intn(len(pool))]
}
