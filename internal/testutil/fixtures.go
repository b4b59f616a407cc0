package testutil

// Vec3 is a value-type member used to exercise nested struct writes.
type Vec3 struct {
	X, Y, Z float64
}

// Transform nests two value-type members.
type Transform struct {
	Position Vec3
	Scale    Vec3
}

// Layer is an enum-backed member.
type Layer int

const (
	LayerDefault Layer = iota
	LayerUI
	LayerWater
)

// EnumNames implements value.Enumerator.
func (Layer) EnumNames() []string { return []string{"Default", "UI", "Water"} }

// Actor is the primary fixture object.
type Actor struct {
	Name      string
	Enabled   bool
	Layer     Layer
	Health    float64
	Transform Transform
	Target    *Actor
	ID        int    `inspect:",readonly"`
	Notes     string `inspect:"-"`
}

// Light shares some members with Actor so heterogeneous selections have a
// common subset.
type Light struct {
	Name      string
	Enabled   bool
	Intensity float64
	Transform Transform
}
