package tiling

import "math"

// Tier grades a newly placed cell by how crowded its surroundings are.
// Within is a multiple of R: the tier applies when the nearest accepted
// center is closer than Within*R. A tier with Within == 0 matches always.
type Tier struct {
	Name        string
	Within      float64
	Volume      float64
	RadiusScale float64
}

// Profile describes one packing variant.
type Profile struct {
	Name string
	// MinSeparation is the reject threshold as a multiple of R.
	MinSeparation float64
	// Tiers are ordered from most to least crowded; the last one is the
	// fallback and is also given to hole-filled cells.
	Tiers      []Tier
	BaseVolume float64
	HoleGrid   int
}

func Monodisperse() Profile {
	return Profile{
		Name:          "mono",
		MinSeparation: 1.54,
		Tiers: []Tier{
			{Name: "uniform", Volume: 0.99, RadiusScale: 1},
		},
		BaseVolume: math.Pi * 0.21,
		HoleGrid:   200,
	}
}

func Polydisperse() Profile {
	return Profile{
		Name:          "poly",
		MinSeparation: 1.4,
		Tiers: []Tier{
			{Name: "crowded", Within: 1.55, Volume: 0.6, RadiusScale: 1},
			{Name: "close", Within: 1.85, Volume: 0.85, RadiusScale: 1},
			{Name: "free", Volume: 1, RadiusScale: 1},
		},
		BaseVolume: math.Pi * 0.22,
		HoleGrid:   50,
	}
}

// ProfileByName resolves "mono" or "poly".
func ProfileByName(name string) (Profile, bool) {
	switch name {
	case "mono", "monodisperse":
		return Monodisperse(), true
	case "poly", "polydisperse":
		return Polydisperse(), true
	}
	return Profile{}, false
}

// grade picks the tier for a cell whose nearest accepted neighbour is at
// distance nearest (math.Inf(1) when there is none).
func (p Profile) grade(nearest, r float64) int {
	for i, t := range p.Tiers {
		if t.Within > 0 && nearest < t.Within*r {
			return i
		}
	}
	return len(p.Tiers) - 1
}

func (p Profile) freeTier() int {
	return len(p.Tiers) - 1
}

// reach is the largest distance, as a multiple of R, that grading or
// rejection ever looks at.
func (p Profile) reach() float64 {
	m := p.MinSeparation
	for _, t := range p.Tiers {
		if t.Within > m {
			m = t.Within
		}
	}
	return m
}
