package regmv

import "strings"

func init() {
	Register("default", newDefault)
}

// defaultValue supplies text for empty or non-participating groups.
// "default:VALUE" and "default:*:VALUE" apply to every group at render time;
// "default:GROUP:VALUE" fills only that group.
type defaultValue struct {
	group selector
	value string
}

func newDefault(args string) (Transform, error) {
	group, value, ok := strings.Cut(args, ":")
	if !ok {
		return &defaultValue{group: selector{all: true}, value: args}, nil
	}
	sel, err := parseSelector(group)
	if err != nil {
		return nil, err
	}
	return &defaultValue{group: sel, value: value}, nil
}

func (d *defaultValue) Name() string { return "default:" + d.group.String() }

func (d *defaultValue) Prepare([]*CaptureSet) error { return nil }

func (d *defaultValue) Apply(set *CaptureSet) error {
	if d.group.all {
		set.SetDefault(d.value)
		return nil
	}
	i, err := set.Index(d.group.key)
	if err != nil {
		return err
	}
	if !set.Matched(i) || set.Value(i) == "" {
		set.SetIndex(i, d.value)
	}
	return nil
}
