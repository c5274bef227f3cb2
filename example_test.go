package depsnap_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/depsnap"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
)

// ExampleNew shows an SDK taking over the top-level slot of its package.
func ExampleNew() {
	eng := depsnap.New()
	ctx := context.Background()
	tf := domain.NewTargetFramework("net8.0")

	sdk := dsl.NewSdk(tf, "Contoso.Sdk").TopLevel().MustDependency()
	pkg := dsl.NewPackage(tf, "Contoso.Sdk").TopLevel().Resolved().Children(`net8.0\NuGetDependency\Contoso.Runtime`).MustDependency()

	snap, err := eng.Apply(ctx, "/src/app/app.csproj", tf, domain.Changes{
		Added: []domain.Dependency{sdk, pkg},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range snap.TopLevel() {
		fmt.Println(d.ID, d.Resolved, d.DependencyIDs)
	}
	fmt.Println("world:", snap.Len())

	// Output:
	// net8.0\SdkDependency\Contoso.Sdk true [net8.0\NuGetDependency\Contoso.Runtime]
	// world: 2
}

// ExampleEngine_Apply shows colliding captions being disambiguated.
func ExampleEngine_Apply() {
	eng := depsnap.New()
	ctx := context.Background()
	tf := domain.NewTargetFramework("net8.0")

	a := dsl.NewPackage(tf, "Contoso.Logging").Caption("Logging").ItemSpec("Contoso.Logging").TopLevel().MustDependency()
	b := dsl.NewPackage(tf, "Fabrikam.Logging").Caption("Logging").ItemSpec("Fabrikam.Logging").TopLevel().MustDependency()

	snap, err := eng.Apply(ctx, "/src/app/app.csproj", tf, domain.Changes{Added: []domain.Dependency{a, b}})
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range snap.TopLevel() {
		fmt.Println(d.Caption)
	}

	// Output:
	// Logging (Contoso.Logging)
	// Logging (Fabrikam.Logging)
}
