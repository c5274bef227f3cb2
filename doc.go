/*
Package depsnap maintains dependency snapshots of projects: for each project and
target framework, the full set of known dependency nodes (the world) and the
subset shown at the root of the dependency tree (the top level).

Every change to a snapshot passes through a chain of filters that may rewrite
the incoming node and adjust the rest of the snapshot before it is committed.
Two filters ship by default:

  - sdk-and-packages links an SDK node with the package of the same name, so
    the SDK mirrors the package's resolution and children while the package
    stays out of the top level.
  - duplicated-dependencies disambiguates top-level nodes of the same provider
    whose captions collide, by switching both to their aliases.

# Usage

	eng := depsnap.New()

	tf := domain.NewTargetFramework("net8.0")
	sdk := dsl.NewSdk(tf, "Contoso.Sdk").TopLevel().MustDependency()

	snap, err := eng.Apply(ctx, "/src/app/app.csproj", tf, domain.Changes{
		Added: []domain.Dependency{sdk},
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range snap.TopLevel() {
		fmt.Println(d.Caption)
	}

Snapshots are immutable. Updates to the same project and target framework are
serialized; with WithLocker they are also serialized across processes.
*/
package depsnap
