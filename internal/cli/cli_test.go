package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/internal/logging"
	"github.com/aretw0/depsnap/internal/presentation/table"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
	"github.com/aretw0/depsnap/pkg/filters"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var tf = domain.NewTargetFramework("net8.0")

func addPackage(t *testing.T, eng *cli.Engine) {
	t.Helper()
	dep := dsl.NewPackage(tf, "Contoso.Lib").Version("1.0.0").TopLevel().Resolved().MustDependency()
	_, err := eng.Apply(context.Background(), "/src/app.csproj", tf, domain.Changes{Added: []domain.Dependency{dep}})
	require.NoError(t, err)
}

func TestCreateEngine_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		opts cli.Options
	}{
		{name: "memory", opts: cli.Options{}},
		{name: "file", opts: cli.Options{StateDir: t.TempDir()}},
		{name: "redis", opts: cli.Options{RedisAddr: mr.Addr(), RedisPrefix: "test:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := cli.CreateEngine(tt.opts, logging.NewNop(), domain.LifecycleHooks{})
			require.NoError(t, err)
			defer eng.Close()

			addPackage(t, eng)
			keys, err := eng.Keys(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"/src/app.csproj|net8.0"}, keys)
		})
	}
}

func TestCreateEngine_FileStorePersists(t *testing.T) {
	dir := t.TempDir()
	opts := cli.Options{StateDir: dir}

	first, err := cli.CreateEngine(opts, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	addPackage(t, first)

	second, err := cli.CreateEngine(opts, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	snap, err := second.Snapshot(context.Background(), "/src/app.csproj", tf)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
}

func TestCreateEngine_Filters(t *testing.T) {
	eng, err := cli.CreateEngine(cli.Options{Filters: []string{filters.DuplicatedDependenciesName}}, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	assert.Equal(t, []string{filters.DuplicatedDependenciesName}, eng.Filters())

	eng, err = cli.CreateEngine(cli.Options{}, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	assert.Equal(t, []string{filters.SdkAndPackagesName, filters.DuplicatedDependenciesName}, eng.Filters())

	_, err = cli.CreateEngine(cli.Options{Filters: []string{"nope"}}, logging.NewNop(), domain.LifecycleHooks{})
	assert.ErrorContains(t, err, "filter not found: nope")
}

func TestOptions(t *testing.T) {
	assert.NoError(t, cli.Options{Output: cli.OutputYAML}.ValidateOutput())
	assert.Error(t, cli.Options{Output: "xml"}.ValidateOutput())

	_, err := cli.Options{LogLevel: "loud"}.Logger()
	assert.Error(t, err)
	logger, err := cli.Options{LogLevel: "debug", LogFormat: "json"}.Logger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestPrintSnapshot(t *testing.T) {
	b := dsl.New(tf)
	b.Package("Contoso.Lib").Version("1.0.0").TopLevel().Resolved()
	snap, err := b.Snapshot("/src/app.csproj")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cli.PrintSnapshot(&buf, snap, cli.OutputJSON, table.Options{}))
		var v snapshot.View
		require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
		assert.Equal(t, "/src/app.csproj", v.ProjectPath)
		assert.Len(t, v.TopLevel, 1)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cli.PrintSnapshot(&buf, snap, cli.OutputYAML, table.Options{}))
		var v snapshot.View
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &v))
		assert.Equal(t, "net8.0", v.TargetFramework)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cli.PrintSnapshot(&buf, snap, cli.OutputTable, table.Options{}))
		assert.Contains(t, buf.String(), "Contoso.Lib")
	})

	t.Run("mermaid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cli.PrintSnapshot(&buf, snap, cli.OutputMermaid, table.Options{}))
		assert.Contains(t, buf.String(), "graph TD")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, cli.PrintSnapshot(&bytes.Buffer{}, snap, "xml", table.Options{}))
	})
}
