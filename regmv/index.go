package regmv

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

func init() {
	Register("index", newIndex)
}

// index replaces a group with its dense rank across the batch. Values are
// ordered numerically when every one of them is an integer, otherwise
// lexically. Ranks start at start and are zero-padded to width, or to the
// digit count of the largest rank when width is zero.
type index struct {
	group string
	start int
	width int

	ranks map[string]int
	pad   int
}

func newIndex(args string) (Transform, error) {
	parts := strings.Split(args, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: expected index:GROUP[:START[:WIDTH]]", ErrTransformSyntax)
	}
	if parts[0] == "" || parts[0] == "*" {
		return nil, fmt.Errorf("%w: index needs a single group", ErrTransformSyntax)
	}
	ix := &index{group: parts[0], start: 1}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrTransformSyntax, parts[1])
		}
		ix.start = n
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: width %q", ErrTransformSyntax, parts[2])
		}
		ix.width = n
	}
	return ix, nil
}

func (ix *index) Name() string { return "index:" + ix.group }

func (ix *index) Prepare(sets []*CaptureSet) error {
	var values []string
	numeric := true
	for _, set := range sets {
		v, matched, err := set.Get(ix.group)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			numeric = false
		}
		values = append(values, v)
	}

	ix.ranks = make(map[string]int, len(values))
	if numeric {
		nums := make(map[string]int64, len(values))
		var uniq []int64
		for _, v := range values {
			n, _ := strconv.ParseInt(v, 10, 64)
			nums[v] = n
			uniq = append(uniq, n)
		}
		slices.Sort(uniq)
		uniq = slices.Compact(uniq)
		for v, n := range nums {
			pos, _ := slices.BinarySearch(uniq, n)
			ix.ranks[v] = ix.start + pos
		}
	} else {
		uniq := slices.Clone(values)
		slices.Sort(uniq)
		uniq = slices.Compact(uniq)
		for pos, v := range uniq {
			ix.ranks[v] = ix.start + pos
		}
	}

	ix.pad = ix.width
	if ix.pad == 0 {
		last := ix.start
		for _, r := range ix.ranks {
			last = max(last, r)
		}
		ix.pad = len(strconv.Itoa(last))
	}
	return nil
}

func (ix *index) Apply(set *CaptureSet) error {
	v, matched, err := set.Get(ix.group)
	if err != nil {
		return err
	}
	if !matched {
		return nil
	}
	rank, ok := ix.ranks[v]
	if !ok {
		return fmt.Errorf("%w: %q was not seen while ranking", ErrUnknownGroup, v)
	}
	return set.Set(ix.group, fmt.Sprintf("%0*d", ix.pad, rank))
}
