package regmv

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Transform rewrites capture groups before the replacement template is
// rendered. Prepare sees every capture set of the batch first, so transforms
// such as index can compute batch-wide state; Apply then runs once per set.
type Transform interface {
	Name() string
	Prepare(sets []*CaptureSet) error
	Apply(set *CaptureSet) error
}

// Factory builds a transform from the text after "name:".
type Factory func(args string) (Transform, error)

var registry = map[string]Factory{}

// Register makes a transform available to ParseTransform under name.
// Registering the same name twice panics.
func Register(name string, factory Factory) {
	if _, dup := registry[name]; dup {
		panic("regmv: transform registered twice: " + name)
	}
	registry[name] = factory
}

// Transforms returns the registered transform names in sorted order.
func Transforms() []string {
	return slices.Sorted(maps.Keys(registry))
}

// ParseTransform parses a transform written as "name:args".
func ParseTransform(spec string) (Transform, error) {
	name, args, _ := strings.Cut(spec, ":")
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	t, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec, err)
	}
	return t, nil
}

// ParseTransforms parses each transform in order.
func ParseTransforms(specs []string) ([]Transform, error) {
	ts := make([]Transform, 0, len(specs))
	for _, spec := range specs {
		t, err := ParseTransform(spec)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// ApplyTransforms runs each transform over the whole batch, in order, so a
// later transform sees the output of an earlier one.
func ApplyTransforms(sets []*CaptureSet, ts []Transform) error {
	for _, t := range ts {
		if err := t.Prepare(sets); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
		for _, set := range sets {
			if err := t.Apply(set); err != nil {
				return fmt.Errorf("%s: %s: %w", t.Name(), set.Source, err)
			}
		}
	}
	return nil
}

// selector addresses either one group or, with all set, every participating
// group except the whole match.
type selector struct {
	key string
	all bool
}

func parseSelector(s string) (selector, error) {
	switch s {
	case "":
		return selector{}, fmt.Errorf("%w: missing group", ErrTransformSyntax)
	case "*":
		return selector{all: true}, nil
	}
	return selector{key: s}, nil
}

func (sel selector) String() string {
	if sel.all {
		return "*"
	}
	return sel.key
}

func (sel selector) targets(set *CaptureSet) ([]int, error) {
	if !sel.all {
		i, err := set.Index(sel.key)
		if err != nil {
			return nil, err
		}
		return []int{i}, nil
	}
	var out []int
	for i := 1; i < set.Len(); i++ {
		if set.Matched(i) {
			out = append(out, i)
		}
	}
	return out, nil
}
