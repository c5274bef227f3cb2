package scenario

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/depsnap/internal/semver"
	"github.com/aretw0/depsnap/internal/validator"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Applier commits a batch of changes and returns the resulting snapshot.
type Applier interface {
	Apply(ctx context.Context, projectPath string, tf domain.TargetFramework, changes domain.Changes) (*snapshot.Snapshot, error)
}

// StepResult is the outcome of one step.
type StepResult struct {
	Name     string
	Snapshot *snapshot.Snapshot
	// Failures lists the expectations the snapshot did not meet.
	Failures []string
}

// Passed reports whether every expectation held.
func (r StepResult) Passed() bool {
	return len(r.Failures) == 0
}

// Changes converts a step into the batch passed to the engine.
func (s Step) Changes(tf domain.TargetFramework) (domain.Changes, error) {
	var changes domain.Changes
	for i, n := range s.Add {
		dep, err := n.Dependency(tf)
		if err != nil {
			return domain.Changes{}, fmt.Errorf("add[%d]: %w", i, err)
		}
		changes.Added = append(changes.Added, dep)
	}
	for i, ref := range s.Remove {
		id, err := ref.Resolve(tf)
		if err != nil {
			return domain.Changes{}, fmt.Errorf("remove[%d]: %w", i, err)
		}
		changes.RemovedIDs = append(changes.RemovedIDs, id)
	}
	return changes, nil
}

// Run applies the steps of sc in order, stopping at the first error.
// Unmet expectations are reported in the results, not as an error.
func Run(ctx context.Context, eng Applier, sc *Scenario) ([]StepResult, error) {
	tf := domain.NewTargetFramework(sc.TargetFramework)
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}

		changes, err := step.Changes(tf)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		snap, err := eng.Apply(ctx, sc.Project, tf, changes)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		result := StepResult{Name: name, Snapshot: snap}
		if step.Expect != nil {
			result.Failures = Check(snap, tf, step.Expect)
		}
		results = append(results, result)
	}
	return results, nil
}

// Check returns one message per expectation snap does not meet.
func Check(snap *snapshot.Snapshot, tf domain.TargetFramework, e *Expect) []string {
	var failures []string
	failf := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.TopLevel != nil {
		want := make([]string, 0, len(e.TopLevel))
		for _, ref := range e.TopLevel {
			id, err := ref.Resolve(tf)
			if err != nil {
				failf("top_level: %v", err)
				continue
			}
			want = append(want, id)
		}
		slices.Sort(want)
		var got []string
		for _, d := range snap.TopLevel() {
			got = append(got, d.ID)
		}
		if !slices.Equal(want, got) {
			failf("top_level: want %v, got %v", want, got)
		}
	}

	if e.WorldSize != nil && snap.Len() != *e.WorldSize {
		failf("world_size: want %d, got %d", *e.WorldSize, snap.Len())
	}

	if e.Valid {
		if err := validator.ValidateSnapshot(snap); err != nil {
			failf("valid: %v", err)
		}
	}

	for _, n := range e.Nodes {
		id, err := n.Ref().Resolve(tf)
		if err != nil {
			failf("nodes: %v", err)
			continue
		}
		failures = append(failures, checkNode(snap, tf, id, n)...)
	}
	return failures
}

func checkNode(snap *snapshot.Snapshot, tf domain.TargetFramework, id string, n NodeExpect) []string {
	var failures []string
	failf := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf("%s: ", id)+fmt.Sprintf(format, args...))
	}

	dep, ok := snap.Get(id)
	if n.Absent {
		if ok {
			failf("want absent")
		}
		return failures
	}
	if !ok {
		return []string{fmt.Sprintf("%s: not in the world", id)}
	}

	if n.Caption != nil && dep.Caption != *n.Caption {
		failf("caption: want %q, got %q", *n.Caption, dep.Caption)
	}
	if n.Resolved != nil && dep.Resolved != *n.Resolved {
		failf("resolved: want %t, got %t", *n.Resolved, dep.Resolved)
	}
	if n.Hidden != nil && dep.Hidden != *n.Hidden {
		failf("hidden: want %t, got %t", *n.Hidden, dep.Hidden)
	}
	if len(n.Flags) > 0 {
		if want, err := domain.ParseFlags(n.Flags...); err == nil && !dep.Flags.Contains(want) {
			failf("flags: want %s, got %s", want, dep.Flags)
		}
	}
	if n.Children != nil {
		want := make([]string, 0, len(n.Children))
		for _, ref := range n.Children {
			if child, err := ref.Resolve(tf); err == nil {
				want = append(want, child)
			}
		}
		if !slices.Equal(want, dep.DependencyIDs) && !(len(want) == 0 && len(dep.DependencyIDs) == 0) {
			failf("children: want %v, got %v", want, dep.DependencyIDs)
		}
	}
	if n.Version != "" {
		ok, err := semver.Check(dep.Version, n.Version)
		switch {
		case err != nil:
			failf("version: %v", err)
		case !ok:
			failf("version: %q does not satisfy %q", dep.Version, n.Version)
		}
	}
	return failures
}
