package data

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrUnknownAnimation is returned when a name is not in the catalog.
var ErrUnknownAnimation = errors.New("unknown animation")

// Animation is an ordered frame sequence. Frames are the glyphs the
// terminal backend draws; the core only ever refers to an animation by name.
type Animation struct {
	Name   string
	Frames []string
	Loop   bool
	Angle  int // heading in degrees for rotated variants (0 = up)
	Rotate int // texture rotation code for rotated variants
}

type animationEntry struct {
	Name      string   `yaml:"name"`
	Frames    []string `yaml:"frames"`
	Loop      bool     `yaml:"loop"`
	Rotations bool     `yaml:"rotations"` // expand into name0, name45, ... name315
	Rotate    int      `yaml:"rotate"`
}

type animationFile struct {
	Animations []animationEntry `yaml:"animations"`
}

// rotationCodes maps heading/45 to the texture rotation code used for
// rotated projectile sprites.
var rotationCodes = [8]int{0, 7, 6, 5, 4, 3, 2, 1}

// RotationCode returns the rotation code for a heading in degrees.
func RotationCode(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	return rotationCodes[angle/45]
}

// AnimationCatalog holds all animations indexed by name.
type AnimationCatalog struct {
	anims map[string]*Animation
}

// NewAnimationCatalog builds a catalog from already constructed animations.
func NewAnimationCatalog(anims ...*Animation) *AnimationCatalog {
	c := &AnimationCatalog{anims: make(map[string]*Animation, len(anims))}
	for _, a := range anims {
		c.anims[a.Name] = a
	}
	return c
}

// Get returns the animation for name.
func (c *AnimationCatalog) Get(name string) (*Animation, error) {
	a, ok := c.anims[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return a, nil
}

// Count returns the number of animations (rotated variants counted apart).
func (c *AnimationCatalog) Count() int {
	return len(c.anims)
}

// LoadAnimationCatalog loads the animation table from a YAML file.
func LoadAnimationCatalog(path string) (*AnimationCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read animations: %w", err)
	}
	c, err := ParseAnimationCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parse animations: %w", err)
	}
	return c, nil
}

// ParseAnimationCatalog decodes a YAML animation table.
func ParseAnimationCatalog(raw []byte) (*AnimationCatalog, error) {
	var f animationFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	c := &AnimationCatalog{anims: make(map[string]*Animation, len(f.Animations))}
	for _, e := range f.Animations {
		if e.Name == "" {
			return nil, errors.New("animation without name")
		}
		if len(e.Frames) == 0 {
			return nil, fmt.Errorf("animation %q has no frames", e.Name)
		}
		if !e.Rotations {
			c.anims[e.Name] = &Animation{Name: e.Name, Frames: e.Frames, Loop: e.Loop, Rotate: e.Rotate}
			continue
		}
		for angle := 0; angle < 360; angle += 45 {
			name := e.Name + strconv.Itoa(angle)
			c.anims[name] = &Animation{
				Name:   name,
				Frames: e.Frames,
				Loop:   e.Loop,
				Angle:  angle,
				Rotate: RotationCode(angle),
			}
		}
	}
	return c, nil
}
