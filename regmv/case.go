package regmv

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	Register("case", newCase)
}

type caseChange struct {
	group selector
	mode  string
	apply func(string) string
}

func newCase(args string) (Transform, error) {
	group, mode, ok := strings.Cut(args, ":")
	if !ok {
		return nil, fmt.Errorf("%w: expected case:GROUP:upper|lower|title", ErrTransformSyntax)
	}
	sel, err := parseSelector(group)
	if err != nil {
		return nil, err
	}
	c := &caseChange{group: sel, mode: mode}
	switch mode {
	case "upper":
		c.apply = strings.ToUpper
	case "lower":
		c.apply = strings.ToLower
	case "title":
		c.apply = cases.Title(language.Und).String
	default:
		return nil, fmt.Errorf("%w: unknown case %q", ErrTransformSyntax, mode)
	}
	return c, nil
}

func (c *caseChange) Name() string { return "case:" + c.group.String() + ":" + c.mode }

func (c *caseChange) Prepare([]*CaptureSet) error { return nil }

func (c *caseChange) Apply(set *CaptureSet) error {
	targets, err := c.group.targets(set)
	if err != nil {
		return err
	}
	for _, i := range targets {
		if set.Matched(i) {
			set.SetIndex(i, c.apply(set.Value(i)))
		}
	}
	return nil
}
