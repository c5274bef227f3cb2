/*
Package dsl provides a fluent builder for dependency nodes and the worlds they live in.

It plays the role of the provider-side dependency factory: Ids are computed with
domain.DependencyID so the SDK/package pairing scheme holds by construction. This is
mostly useful for tests, fixtures and embedding scenarios.

Example usage:

	b := dsl.New(domain.NewTargetFramework("net8.0"))

	b.Sdk("Microsoft.NETCore.App").TopLevel()

	b.Package("Microsoft.NETCore.App").
		Version("8.0.0").
		TopLevel().
		Resolved().
		Children(`net8.0\NuGetDependency\System.Runtime`)

	b.Package("System.Runtime").Resolved()

	snap, err := b.Snapshot("/src/App/App.csproj")
*/
package dsl
