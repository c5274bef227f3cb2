package domain

// TargetFramework identifies the framework a snapshot is built for (e.g. "net8.0").
type TargetFramework struct {
	Moniker string `json:"moniker" yaml:"moniker"`
}

// NewTargetFramework returns a TargetFramework for the given moniker.
func NewTargetFramework(moniker string) TargetFramework {
	return TargetFramework{Moniker: moniker}
}

// IsZero reports whether no moniker is set.
func (tf TargetFramework) IsZero() bool {
	return tf.Moniker == ""
}

func (tf TargetFramework) String() string {
	return tf.Moniker
}
