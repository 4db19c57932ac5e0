package regmv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConflictKind classifies why a planned rename cannot run.
type ConflictKind int

const (
	ConflictInvalidName ConflictKind = iota
	ConflictDuplicateTarget
	ConflictTargetExists
	ConflictMissingParent
	ConflictParentNotDir
	ConflictIntoSelf
	ConflictCopyDir
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictInvalidName:
		return "invalid destination name"
	case ConflictDuplicateTarget:
		return "destination claimed by another source"
	case ConflictTargetExists:
		return "destination already exists"
	case ConflictMissingParent:
		return "destination directory does not exist (use --mkdir)"
	case ConflictParentNotDir:
		return "destination parent is not a directory"
	case ConflictIntoSelf:
		return "directory moved into itself"
	case ConflictCopyDir:
		return "only regular files can be copied"
	default:
		return "unknown conflict"
	}
}

// Conflict is one reason a plan cannot run.
type Conflict struct {
	Kind   ConflictKind
	Rename Rename
	Other  string // the competing path, when there is one
}

func (c Conflict) Error() string {
	msg := fmt.Sprintf("%s -> %s: %s", c.Rename.Src, c.Rename.Dst, c.Kind)
	if c.Other != "" {
		msg += " (" + c.Other + ")"
	}
	return msg
}

// ConflictError carries every conflict found in a plan.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "1 conflict in rename plan: " + e.Conflicts[0].Error()
	}
	return fmt.Sprintf("%d conflicts in rename plan", len(e.Conflicts))
}

// Check validates the whole plan against itself and the filesystem and
// returns every conflict it finds. A destination that exists is accepted in
// move mode when the batch moves that path away first. All paths refer to
// the tree as it is before the batch runs.
func (p *Plan) Check() []Conflict {
	var conflicts []Conflict
	report := func(kind ConflictKind, r Rename, other string) {
		conflicts = append(conflicts, Conflict{Kind: kind, Rename: r, Other: other})
	}

	sources := make(map[string]int, len(p.renames))
	owner := make(map[string]int, len(p.renames))
	for i, r := range p.renames {
		sources[pathKey(r.Src)] = i
	}

	for i, r := range p.renames {
		if invalidName(r.Name) {
			report(ConflictInvalidName, r, "")
			continue
		}
		src, dst := pathKey(r.Src), pathKey(r.Dst)

		if first, dup := owner[dst]; dup {
			report(ConflictDuplicateTarget, r, p.renames[first].Src)
			continue
		}
		owner[dst] = i

		if p.Mode == Copy && r.IsDir {
			report(ConflictCopyDir, r, "")
			continue
		}
		if p.Mode == Move && r.IsDir && within(dst, src) {
			report(ConflictIntoSelf, r, "")
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			_, vacated := sources[dst]
			if p.Mode == Copy || (!vacated && !sameFile(src, dst)) {
				report(ConflictTargetExists, r, "")
				continue
			}
		}

		if kind, bad := p.checkParent(filepath.Dir(dst)); bad {
			report(kind, r, "")
		}
	}
	return conflicts
}

// checkParent walks up from dir to the first existing ancestor.
func (p *Plan) checkParent(dir string) (ConflictKind, bool) {
	missing := false
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return ConflictParentNotDir, true
			}
			break
		}
		missing = true
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if missing && !p.MakeDirs {
		return ConflictMissingParent, true
	}
	return 0, false
}

func invalidName(name string) bool {
	if name == "" || strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)) {
		return true
	}
	switch filepath.Base(filepath.Clean(filepath.FromSlash(name))) {
	case ".", "..", string(filepath.Separator):
		return true
	}
	return false
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// sameFile catches case-only renames on case-insensitive filesystems.
func sameFile(a, b string) bool {
	ai, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
