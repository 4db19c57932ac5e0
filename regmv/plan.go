package regmv

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// Mode selects whether a plan moves or copies its sources.
type Mode int

const (
	Move Mode = iota
	Copy
)

func (m Mode) String() string {
	if m == Copy {
		return "copy"
	}
	return "move"
}

// Options controls how a plan is built.
type Options struct {
	Pattern    string
	Template   string
	Transforms []Transform

	IgnoreCase bool // case-insensitive matching
	Partial    bool // replace only the leftmost match instead of the whole subject
	FullPath   bool // match against the path relative to the listing root
	Recursive  bool // descend into subdirectories
	Dirs       bool // directories are candidates too
	Hidden     bool // include dot entries

	MakeDirs bool // create missing destination parents
	Mode     Mode
}

type (
	// Candidate is a listed path that may be renamed.
	Candidate struct {
		Path    string // path as listed
		Root    string // listing root the path was found under
		Subject string // text the pattern is matched against
		IsDir   bool
	}

	// Rename is one planned operation.
	Rename struct {
		Src      string
		Dst      string
		Name     string // rendered template text, before joining
		IsDir    bool
		Captures *CaptureSet
	}

	// Plan is the ordered list of renames produced by Build.
	Plan struct {
		Mode     Mode
		MakeDirs bool
		renames  []Rename
	}
)

// Compile builds the matcher for pattern. Unless partial is set the pattern
// has to match the whole subject.
func Compile(pattern string, ignoreCase, partial bool) (*regexp.Regexp, error) {
	expr := pattern
	if !partial {
		expr = "^(?:" + pattern + ")$"
	}
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// List expands paths into rename candidates. Directories contribute their
// entries (their whole subtree with Recursive); files contribute themselves.
func List(paths []string, opts Options) ([]Candidate, error) {
	var out []Candidate
	seen := map[string]bool{}
	add := func(c Candidate) {
		k := pathKey(c.Path)
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, c)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(Candidate{
				Path:    root,
				Root:    filepath.Dir(root),
				Subject: filepath.Base(root),
			})
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}
			if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() || opts.Dirs {
				c := Candidate{Path: path, Root: root, IsDir: d.IsDir(), Subject: d.Name()}
				if opts.FullPath {
					rel, err := filepath.Rel(root, path)
					if err != nil {
						return err
					}
					c.Subject = filepath.ToSlash(rel)
				}
				add(c)
			}
			if d.IsDir() && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Build lists paths, matches every candidate, runs the transforms over the
// matched capture sets and renders the destinations. Candidates that do not
// match and renames onto themselves are left out.
func Build(paths []string, opts Options) (*Plan, error) {
	re, err := Compile(opts.Pattern, opts.IgnoreCase, opts.Partial)
	if err != nil {
		return nil, err
	}
	cands, err := List(paths, opts)
	if err != nil {
		return nil, err
	}

	var (
		sets    []*CaptureSet
		matched []Candidate
	)
	for _, c := range cands {
		set, ok := NewCaptureSet(re, c.Path, c.Subject, opts.Partial)
		if !ok {
			continue
		}
		sets = append(sets, set)
		matched = append(matched, c)
	}
	log.Debug("matched candidates", "listed", len(cands), "matched", len(sets))

	if err := ApplyTransforms(sets, opts.Transforms); err != nil {
		return nil, err
	}

	p := &Plan{Mode: opts.Mode, MakeDirs: opts.MakeDirs}
	for i, set := range sets {
		c := matched[i]
		name, err := set.Render(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Path, err)
		}
		dst := destination(c, name, opts.FullPath)
		if pathKey(dst) == pathKey(c.Path) {
			continue
		}
		p.Add(Rename{Src: c.Path, Dst: dst, Name: name, IsDir: c.IsDir, Captures: set})
	}
	return p, nil
}

func destination(c Candidate, name string, fullPath bool) string {
	rel := filepath.FromSlash(name)
	switch {
	case filepath.IsAbs(rel):
		return filepath.Clean(rel)
	case fullPath:
		return filepath.Join(c.Root, rel)
	default:
		return filepath.Join(filepath.Dir(c.Path), rel)
	}
}

// pathKey normalises a path for comparisons between plan entries.
func pathKey(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func (p *Plan) Add(r Rename) {
	p.renames = append(p.renames, r)
}

func (p *Plan) Len() int { return len(p.renames) }

func (p *Plan) Get(index int) Rename {
	if index < 0 || index >= len(p.renames) {
		return Rename{}
	}
	return p.renames[index]
}

func (p *Plan) Iterate(yield func(Rename) bool) {
	for _, r := range p.renames {
		if !yield(r) {
			return
		}
	}
}
