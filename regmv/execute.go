package regmv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// TempPrefix starts the hidden names used to break rename cycles.
const TempPrefix = ".regmv-"

// Step is one filesystem operation of an executed plan.
type Step struct {
	From string
	To   string
	Temp bool // From is being parked under a temporary name
}

// ExecError reports the step that failed and how many steps completed
// before it. Completed steps are not rolled back.
type ExecError struct {
	Step      Step
	Completed int
	Err       error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s -> %s: %v (%d steps completed)", e.Step.From, e.Step.To, e.Err, e.Completed)
}

func (e *ExecError) Unwrap() error { return e.Err }

// rename is swapped out in tests to simulate cross-device moves.
var rename = os.Rename

// Steps orders the plan so that a rename whose destination is another
// rename's source runs after it. Cycles are broken by first parking one
// member under a unique temporary name in its own directory.
//
// Paths refer to the tree before the batch, so deeper renames run first:
// a file inside a directory that is also renamed moves while its parent is
// still in place, and the parent then carries it along.
func (p *Plan) Steps() []Step {
	steps := make([]Step, 0, len(p.renames))
	if p.Mode == Copy {
		for _, r := range p.renames {
			steps = append(steps, Step{From: r.Src, To: r.Dst})
		}
		return steps
	}

	bySrc := make(map[string]int, len(p.renames))
	for i, r := range p.renames {
		bySrc[pathKey(r.Src)] = i
	}
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(p.renames))
	parked := map[int]string{}
	from := func(i int) string {
		if tmp, ok := parked[i]; ok {
			return tmp
		}
		return p.renames[i].Src
	}

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		r := p.renames[i]
		if j, ok := bySrc[pathKey(r.Dst)]; ok && j != i {
			switch state[j] {
			case unvisited:
				visit(j)
			case visiting:
				tmp := filepath.Join(filepath.Dir(p.renames[j].Src), TempPrefix+uuid.NewString())
				steps = append(steps, Step{From: p.renames[j].Src, To: tmp, Temp: true})
				parked[j] = tmp
			}
		}
		steps = append(steps, Step{From: from(i), To: r.Dst})
		state[i] = done
	}
	for _, i := range p.depthOrder() {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return steps
}

// depthOrder returns the rename indices, deepest source or destination
// first. Renames at the same depth keep plan order.
func (p *Plan) depthOrder() []int {
	depth := func(r Rename) int {
		sep := string(filepath.Separator)
		return max(strings.Count(pathKey(r.Src), sep), strings.Count(pathKey(r.Dst), sep))
	}
	order := make([]int, len(p.renames))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return depth(p.renames[order[a]]) > depth(p.renames[order[b]])
	})
	return order
}

// Execute checks the plan and then performs it. The first failing step
// stops execution with an *ExecError; a plan with conflicts is rejected with
// a *ConflictError before anything is touched. report, when not nil, is
// called after each completed step.
func (p *Plan) Execute(ctx context.Context, report func(Step)) error {
	if conflicts := p.Check(); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	if p.MakeDirs {
		for _, r := range p.renames {
			dir := filepath.Dir(r.Dst)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return &ExecError{Step: Step{From: r.Src, To: r.Dst}, Err: err}
			}
		}
	}

	for n, step := range p.Steps() {
		if err := ctx.Err(); err != nil {
			return &ExecError{Step: step, Completed: n, Err: err}
		}
		var err error
		if p.Mode == Copy {
			err = copyFile(step.From, step.To)
		} else {
			err = move(step.From, step.To)
		}
		if err != nil {
			return &ExecError{Step: step, Completed: n, Err: err}
		}
		log.Debug("step done", "mode", p.Mode, "from", step.From, "to", step.To, "temp", step.Temp)
		if report != nil {
			report(step)
		}
	}
	return nil
}

func move(from, to string) error {
	err := rename(from, to)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	log.Debug("cross-device move, copying", "from", from, "to", to)
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	if info.IsDir() {
		err = copyTree(from, to)
	} else {
		err = copyFile(from, to)
	}
	if err != nil {
		return err
	}
	return os.RemoveAll(from)
}

// copyFile copies a regular file, refusing to overwrite to, and carries over
// the permission bits and modification time.
func copyFile(from, to string) error {
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	switch {
	case info.IsDir():
		return fmt.Errorf("%w: %s", ErrCopyDirectory, from)
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(from)
		if err != nil {
			return err
		}
		return os.Symlink(target, to)
	}

	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(to)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(to)
		return err
	}
	return os.Chtimes(to, info.ModTime(), info.ModTime())
}

func copyTree(from, to string) error {
	return filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to, rel)
		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target)
	})
}
