package table

import (
	"bytes"
	"testing"

	"github.com/aretw0/depsnap/internal/testutils"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tf := domain.NewTargetFramework("net8.0")
	b := dsl.New(tf)
	b.Package("Contoso.Runtime").Version("8.0.1").Resolved()
	runtimeID := b.Package("Contoso.Runtime").MustDependency().ID
	b.Sdk("Contoso.Sdk").TopLevel().Resolved().Children(runtimeID, `net8.0\NuGetDependency\ghost`)
	b.Package("Contoso.Sdk").TopLevel().Resolved().Hidden()
	snap := testutils.Snapshot(t, b, "/src/app.csproj")

	var buf bytes.Buffer
	Render(&buf, snap, Options{})
	out := buf.String()

	assert.Contains(t, out, "NODE")
	assert.Contains(t, out, "Contoso.Sdk")
	assert.Contains(t, out, "└ Contoso.Runtime")
	assert.Contains(t, out, "8.0.1")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "1 top-level")
	assert.Contains(t, out, "3 in world")
	assert.NotContains(t, out, "hidden", "hidden nodes are listed only with All")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	text.EnableColors()
	Render(&buf, snap, Options{All: true, Color: true})
	assert.Contains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "\x1b[")
}
