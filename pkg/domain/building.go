package domain

import "sort"

// Building describes a simulator scenario.
type Building struct {
	Name      string `json:"name" yaml:"name"`
	Floors    int    `json:"floors" yaml:"floors"`
	Elevators int    `json:"elevators" yaml:"elevators"`
	Requests  int    `json:"requests" yaml:"requests"`
	Turns     int    `json:"turns" yaml:"turns"`
	// Clustered buildings have rush hours instead of uniformly random calls.
	Clustered bool `json:"clustered" yaml:"clustered"`
}

const (
	BuildingTinyRandom   = "tiny_random"
	BuildingMediumRandom = "medium_random"
	BuildingBigRandom    = "big_random"
	BuildingBigClustered = "big_clustered"
	BuildingSkyTower     = "85_sky_tower"
)

var buildings = map[string]Building{
	BuildingTinyRandom:   {Name: BuildingTinyRandom, Floors: 10, Elevators: 2, Requests: 3, Turns: 30},
	BuildingMediumRandom: {Name: BuildingMediumRandom, Floors: 20, Elevators: 4, Requests: 25, Turns: 80},
	BuildingBigRandom:    {Name: BuildingBigRandom, Floors: 25, Elevators: 8, Requests: 450, Turns: 500},
	BuildingBigClustered: {Name: BuildingBigClustered, Floors: 25, Elevators: 8, Requests: 450, Turns: 500, Clustered: true},
	BuildingSkyTower:     {Name: BuildingSkyTower, Floors: 50, Elevators: 8, Requests: 700, Turns: 1000, Clustered: true},
}

// LookupBuilding returns the metadata of a known building.
func LookupBuilding(name string) (Building, bool) {
	b, ok := buildings[name]
	return b, ok
}

// Buildings lists the known buildings ordered by size.
func Buildings() []Building {
	out := make([]Building, 0, len(buildings))
	for _, b := range buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floors != out[j].Floors {
			return out[i].Floors < out[j].Floors
		}
		if out[i].Requests != out[j].Requests {
			return out[i].Requests < out[j].Requests
		}
		return out[i].Name < out[j].Name
	})
	return out
}
