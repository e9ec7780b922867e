package tailoring_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/svc/tailoring"
)

const definitionsYAML = `
tenants:
  - id: plattform
    name: Plattform
    label: PLATTFORM
    output: pdf
    template: catalog.html
    fragment_prefix: pl_
    placeholders:
      DRD_DOC_ID: PL-DRD
    editability:
      policy: lock
  - id: ground
    name: Ground
    label: GROUND
    output: xhtml
`

func TestParseDefinitions(t *testing.T) {
	t.Parallel()

	defs, err := tailoring.ParseDefinitions(strings.NewReader(definitionsYAML))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	pl := defs[0]
	assert.Equal(t, "plattform", pl.ID)
	assert.Equal(t, "PLATTFORM", pl.Tenant().Label)
	assert.Equal(t, tailoring.OutputPDF, pl.Output)
	assert.Equal(t, "pl_", pl.FragmentPrefix)
	assert.Equal(t, "PL-DRD", pl.Placeholders["DRD_DOC_ID"])
	assert.Equal(t, tailoring.PolicyLock, pl.Editability.Policy)

	ground := defs[1]
	assert.Equal(t, tailoring.OutputXHTML, ground.Output)
	assert.Equal(t, "catalog.html", ground.Template)
	assert.Equal(t, tailoring.PolicyAlways, ground.Editability.Policy)
}

func TestParseDefinitions_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown output": "tenants:\n  - id: a\n    output: docx\n",
		"unknown policy": "tenants:\n  - id: a\n    editability:\n      policy: sometimes\n",
		"unknown field":  "tenants:\n  - id: a\n    colour: red\n",
		"malformed":      "tenants: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tailoring.ParseDefinitions(strings.NewReader(in))
			assert.ErrorIs(t, err, tailoring.ErrDefinitions)
		})
	}
}

func TestParseDefinitions_Empty(t *testing.T) {
	t.Parallel()

	defs, err := tailoring.ParseDefinitions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestLoadDefinitions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionsYAML), 0o600))

	defs, err := tailoring.LoadDefinitions(path)
	require.NoError(t, err)
	assert.Len(t, defs, 2)

	_, err = tailoring.LoadDefinitions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, tailoring.ErrDefinitions)
}
