// Package demo holds the sample scene shared by propctl and propexplorer and
// the session that wires a presenter, an undo history and a panel over it.
package demo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/propkit/inspect/accessor"
	"github.com/joshuapare/propkit/inspect/editor"
	"github.com/joshuapare/propkit/inspect/editors"
	"github.com/joshuapare/propkit/pkg/value"
)

// ErrUnknownObject indicates an object id that is not part of the scene.
var ErrUnknownObject = errors.New("demo: unknown object")

// Vec3 is a position, rotation or scale.
type Vec3 struct {
	X, Y, Z float64
}

// Transform places an object in the scene.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// Color is an 8-bit RGB color. The registry shows it as one "#rrggbb" row.
type Color struct {
	R, G, B uint8
}

// Team is the side an actor fights for.
type Team int

const (
	TeamNeutral Team = iota
	TeamRed
	TeamBlue
)

func (Team) EnumNames() []string { return []string{"Neutral", "Red", "Blue"} }

// Shadows is a light's shadow mode.
type Shadows int

const (
	ShadowsOff Shadows = iota
	ShadowsHard
	ShadowsSoft
)

func (Shadows) EnumNames() []string { return []string{"Off", "Hard", "Soft"} }

// Actor is a character.
type Actor struct {
	ID        int `inspect:",readonly"`
	Name      string
	Active    bool
	Team      Team
	Health    float64
	MaxHealth float64
	Tint      Color
	Transform Transform
	Target    *Actor
	Script    string `inspect:"-"`
}

// Light illuminates the scene.
type Light struct {
	ID        int `inspect:",readonly"`
	Name      string
	Active    bool
	Color     Color
	Intensity float64
	Range     float64
	Shadows   Shadows
	Transform Transform
}

// Camera renders the scene.
type Camera struct {
	ID        int `inspect:",readonly"`
	Name      string
	Active    bool
	FOV       float64 `inspect:"Field of View"`
	Near, Far float64
	Transform Transform
	Follow    *Actor
}

// Object is one entry of a scene.
type Object struct {
	// Key addresses the object on the command line: "actor-1", "light-0".
	Key string
	// Target is a pointer to an Actor, Light or Camera.
	Target any
}

// Scene is an ordered set of objects.
type Scene struct {
	Objects []Object
}

// NewScene returns the sample scene: three actors, two lights and a camera
// following the first actor. Every call returns fresh objects.
func NewScene() *Scene {
	one := Vec3{X: 1, Y: 1, Z: 1}
	hero := &Actor{
		ID: 1, Name: "Hero", Active: true, Team: TeamBlue, Health: 100, MaxHealth: 100,
		Tint:      Color{R: 0x33, G: 0x66, B: 0xff},
		Transform: Transform{Scale: one},
		Script:    "hero.lua",
	}
	grunt := &Actor{
		ID: 2, Name: "Grunt", Active: true, Team: TeamRed, Health: 60, MaxHealth: 60,
		Tint:      Color{R: 0xcc, G: 0x22, B: 0x22},
		Transform: Transform{Position: Vec3{X: 10, Z: -4}, Scale: one},
		Target:    hero,
	}
	brute := &Actor{
		ID: 3, Name: "Brute", Active: false, Team: TeamRed, Health: 250, MaxHealth: 250,
		Tint:      Color{R: 0x88, G: 0x11, B: 0x11},
		Transform: Transform{Position: Vec3{X: 14, Z: 3}, Scale: Vec3{X: 2, Y: 2, Z: 2}},
		Target:    hero,
	}
	sun := &Light{
		ID: 4, Name: "Sun", Active: true, Color: Color{R: 0xff, G: 0xf4, B: 0xd6},
		Intensity: 1.2, Range: 1000, Shadows: ShadowsSoft,
		Transform: Transform{Position: Vec3{Y: 50}, Rotation: Vec3{X: 50, Y: -30}, Scale: one},
	}
	torch := &Light{
		ID: 5, Name: "Torch", Active: true, Color: Color{R: 0xff, G: 0x99, B: 0x33},
		Intensity: 0.6, Range: 8, Shadows: ShadowsHard,
		Transform: Transform{Position: Vec3{X: 2, Y: 3}, Scale: one},
	}
	cam := &Camera{
		ID: 6, Name: "Main Camera", Active: true, FOV: 60, Near: 0.1, Far: 500,
		Transform: Transform{Position: Vec3{Y: 4, Z: -10}, Rotation: Vec3{X: 15}, Scale: one},
		Follow:    hero,
	}

	return &Scene{Objects: []Object{
		{Key: "actor-0", Target: hero},
		{Key: "actor-1", Target: grunt},
		{Key: "actor-2", Target: brute},
		{Key: "light-0", Target: sun},
		{Key: "light-1", Target: torch},
		{Key: "camera-0", Target: cam},
	}}
}

// Keys returns the keys of all objects in scene order.
func (s *Scene) Keys() []string {
	out := make([]string, len(s.Objects))
	for i, o := range s.Objects {
		out[i] = o.Key
	}
	return out
}

// Lookup returns the targets for keys, in the order given.
func (s *Scene) Lookup(keys ...string) ([]any, error) {
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		o, ok := s.find(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownObject, k)
		}
		out = append(out, o.Target)
	}
	return out, nil
}

// NameOf returns the display name of a scene target.
func NameOf(target any) string {
	switch t := target.(type) {
	case *Actor:
		return t.Name
	case *Light:
		return t.Name
	case *Camera:
		return t.Name
	}
	return fmt.Sprintf("%T", target)
}

func (s *Scene) find(key string) (Object, bool) {
	for _, o := range s.Objects {
		if strings.EqualFold(o.Key, key) {
			return o, true
		}
	}
	return Object{}, false
}

const colorType = "demo.Color"

// NewRegistry returns the stock registry plus the color editor.
func NewRegistry() *editors.Registry {
	reg := editors.NewRegistry()
	reg.Register(colorType, func(_ *editors.Registry, m accessor.Member) editor.Kind {
		return editors.NewLeaf(m, formatColor, parseColor)
	})
	return reg
}

// Format renders v the way the inspector shows it.
func Format(v value.Value) string {
	if v.Type() == colorType {
		return formatColor(v)
	}
	return v.String()
}

func formatColor(v value.Value) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, ch := range []string{"R", "G", "B"} {
		c, _ := v.Field(ch)
		fmt.Fprintf(&b, "%02x", c.AsInt())
	}
	return b.String()
}

func parseColor(text string, cur value.Value) (value.Value, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if len(hex) != 6 {
		return value.Value{}, fmt.Errorf("%w: %q is not #rrggbb", editors.ErrInvalidInput, text)
	}
	out := cur
	for i, ch := range []string{"R", "G", "B"} {
		c, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %q is not #rrggbb", editors.ErrInvalidInput, text)
		}
		if out, err = out.WithField(ch, value.Uint(c).Typed("uint8")); err != nil {
			return value.Value{}, err
		}
	}
	return out, nil
}
