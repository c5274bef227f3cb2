package scenario

import (
	"github.com/aretw0/depsnap/internal/semver"
	"github.com/aretw0/depsnap/pkg/domain"
)

// Validate checks sc for missing or malformed fields and returns every failure
// as one *AggregateError.
func Validate(sc *Scenario) error {
	var errs []error
	var fail failFunc = func(path Path, reason string, value any) {
		errs = append(errs, &ValidationError{Path: path, Reason: reason, Value: value})
	}

	if sc.Project == "" {
		fail(At("project"), "is required", nil)
	}
	if sc.TargetFramework == "" {
		fail(At("target_framework"), "is required", nil)
	}
	if len(sc.Steps) == 0 {
		fail(At("steps"), "at least one step is required", nil)
	}

	for i, step := range sc.Steps {
		at := At("steps").Index(i)
		if len(step.Add) == 0 && len(step.Remove) == 0 && step.Expect == nil {
			fail(at, "step does nothing", nil)
		}
		for j, n := range step.Add {
			node := at.Field("add").Index(j)
			if n.Provider == "" {
				fail(node.Field("provider"), "is required", nil)
			}
			if n.Name == "" {
				fail(node.Field("name"), "is required", nil)
			}
			if n.Version != "" {
				if _, err := semver.ParseVersion(n.Version); err != nil {
					fail(node.Field("version"), "is not a semantic version", n.Version)
				}
			}
			for k, child := range n.Children {
				checkRef(fail, node.Field("children").Index(k), child)
			}
		}
		for j, ref := range step.Remove {
			checkRef(fail, at.Field("remove").Index(j), ref)
		}
		if step.Expect != nil {
			validateExpect(fail, at.Field("expect"), step.Expect)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

type failFunc func(path Path, reason string, value any)

func validateExpect(fail failFunc, at Path, e *Expect) {
	for i, ref := range e.TopLevel {
		checkRef(fail, at.Field("top_level").Index(i), ref)
	}
	if e.WorldSize != nil && *e.WorldSize < 0 {
		fail(at.Field("world_size"), "must not be negative", *e.WorldSize)
	}
	for i, n := range e.Nodes {
		node := at.Field("nodes").Index(i)
		checkRef(fail, node, n.Ref())
		if n.Version != "" {
			if _, err := semver.ParseConstraint(n.Version); err != nil {
				fail(node.Field("version"), "is not a version constraint", n.Version)
			}
		}
		if len(n.Flags) > 0 {
			if _, err := domain.ParseFlags(n.Flags...); err != nil {
				fail(node.Field("flags"), err.Error(), nil)
			}
		}
		for k, child := range n.Children {
			checkRef(fail, node.Field("children").Index(k), child)
		}
	}
}

func checkRef(fail failFunc, at Path, r Ref) {
	switch {
	case r.ID != "" && (r.Provider != "" || r.Name != ""):
		fail(at, "set either id or provider and name", nil)
	case r.ID == "" && (r.Provider == "" || r.Name == ""):
		fail(at, "id or provider and name are required", nil)
	}
}
