package testutil

import (
	"fmt"
	"testing"

	"github.com/joshuapare/propkit/pkg/value"
)

// NewActors returns n distinct actors with predictable contents:
// actor i is named "actor-i", has health 100 and sits at X=i.
//
// Example:
//
//	actors := testutil.NewActors(t, 3)
//	sel := testutil.Selection(actors...)
func NewActors(t testing.TB, n int) []*Actor {
	t.Helper()

	out := make([]*Actor, n)
	for i := range out {
		out[i] = &Actor{
			Name:    fmt.Sprintf("actor-%d", i),
			Enabled: true,
			Health:  100,
			ID:      i + 1,
			Transform: Transform{
				Position: Vec3{X: float64(i)},
				Scale:    Vec3{X: 1, Y: 1, Z: 1},
			},
		}
	}
	return out
}

// Selection wraps objects as reference values in selection order.
func Selection[T any](objs ...T) []value.Value {
	out := make([]value.Value, len(objs))
	for i, o := range objs {
		out[i] = value.Ref(o)
	}
	return out
}
