package domain

// Changes is a batch of dependency events applied to a single snapshot.
// Removals are processed before additions.
type Changes struct {
	Added      []Dependency `json:"added,omitempty" yaml:"added,omitempty"`
	RemovedIDs []string     `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// IsEmpty reports whether the batch carries no events.
func (c Changes) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.RemovedIDs) == 0
}
