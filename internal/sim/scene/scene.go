// Package scene is the named-object registry the simulation core resolves
// bodies from. It plays the role of the backend's scene graph: objects form
// a hierarchy, are addressed by dotted path, and carry opaque body handles.
package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/pitchsim/internal/sim/engine"
)

// Separator joins name components in an object path.
const Separator = "."

// Object is one node of the scene hierarchy. Leaf objects usually carry a
// body; group objects usually carry children.
type Object struct {
	name     string
	fullName string
	body     engine.Body
	children []*Object
}

// Name returns the object's own name component.
func (o *Object) Name() string { return o.name }

// FullName returns the dotted path from the scene root to this object.
func (o *Object) FullName() string { return o.fullName }

// Body returns the object's body handle, or nil for pure groups.
func (o *Object) Body() engine.Body { return o.body }

// ChildCount returns the number of direct children.
func (o *Object) ChildCount() int { return len(o.children) }

// Child returns the i-th direct child.
func (o *Object) Child(i int) *Object { return o.children[i] }

// AddChild registers and returns a child object. The set of objects is fixed
// for the lifetime of a run, so there is no removal.
func (o *Object) AddChild(name string, body engine.Body) *Object {
	child := &Object{
		name:     name,
		fullName: o.fullName + Separator + name,
		body:     body,
	}
	o.children = append(o.children, child)
	return child
}

// Scene is the root of the object hierarchy.
type Scene struct {
	root *Object
}

// New creates a scene whose root object carries the given name.
func New(rootName string) *Scene {
	return &Scene{root: &Object{name: rootName, fullName: rootName}}
}

// Root returns the scene's root object.
func (s *Scene) Root() *Object { return s.root }

// Resolve looks up an object by its full dotted path.
func (s *Scene) Resolve(path string) (*Object, error) {
	parts := strings.Split(path, Separator)
	if len(parts) == 0 || parts[0] != s.root.name {
		return nil, fmt.Errorf("scene: no object %q", path)
	}
	cur := s.root
outer:
	for _, part := range parts[1:] {
		for _, child := range cur.children {
			if child.name == part {
				cur = child
				continue outer
			}
		}
		return nil, fmt.Errorf("scene: no object %q", path)
	}
	return cur, nil
}

// TrailingNumber extracts the numeric identifier from an object name: the
// decimal suffix of the final path component ("Pitch.robots.robot12" → 12).
// Names without a digit suffix are a scene construction error; callers treat
// it as fatal because the roster cannot be identified without it.
func TrailingNumber(fullName string) (int, error) {
	name := fullName
	if i := strings.LastIndex(fullName, Separator); i >= 0 {
		name = fullName[i+len(Separator):]
	}
	start := len(name)
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == len(name) {
		return 0, fmt.Errorf("scene: object %q has no numeric suffix", fullName)
	}
	n, err := strconv.Atoi(name[start:])
	if err != nil {
		return 0, fmt.Errorf("scene: object %q has malformed numeric suffix: %w", fullName, err)
	}
	return n, nil
}
