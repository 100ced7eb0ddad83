package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/internal/testutil"
	"tabprep/pkg/data"
	"tabprep/pkg/pipeline"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

type artifacts struct {
	dir, save, header string
}

func newArtifacts(t *testing.T) artifacts {
	dir := t.TempDir()
	return artifacts{
		dir:    dir,
		save:   filepath.Join(dir, "preprocessor.gob"),
		header: filepath.Join(dir, "header.csv"),
	}
}

func (a artifacts) flags() []string {
	return []string{"--save-path", a.save, "--header-path", a.header}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tabprep v"+Version+"\n", out)
}

func TestRunThenApply(t *testing.T) {
	a := newArtifacts(t)
	input := testutil.WriteFile(t, "people.csv", testutil.AgeCityCSV)
	output := filepath.Join(a.dir, "out.csv")
	cleaned := filepath.Join(a.dir, "clean.csv")
	plotPath := filepath.Join(a.dir, "outliers.png")

	args := append([]string{"run", input, "-o", output, "--cleaned-output", cleaned, "--plot", plotPath, "--preview", "2"}, a.flags()...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Preprocessed 12 rows (1 dropped as outliers) into 2 columns")
	assert.Contains(t, out, "Artifacts saved: "+a.save+" & "+a.header)
	assert.Contains(t, strings.ToLower(out), "10 more rows")
	assert.FileExists(t, a.save)
	assert.FileExists(t, plotPath)

	header, err := os.ReadFile(a.header)
	require.NoError(t, err)
	assert.Equal(t, "age,city\n", string(header))

	file, err := os.Open(output)
	require.NoError(t, err)
	transformed, err := data.ReadCSV(file, data.Options{})
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "city"}, transformed.Names())
	assert.Equal(t, 12, transformed.NumRows())

	raw, err := os.ReadFile(cleaned)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 13)
	assert.Equal(t, "35,Jakarta", lines[5])

	fresh := testutil.WriteFile(t, "new.csv", "age,city\n40,Bandung\n,Jakarta\n")
	out, err = executeCommand(t, append([]string{"apply", fresh}, a.flags()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Transformed 2 rows into 2 columns")
}

func TestApplyRejectsMismatchedHeader(t *testing.T) {
	a := newArtifacts(t)
	input := testutil.WriteFile(t, "people.csv", testutil.AgeCityCSV)
	_, err := executeCommand(t, append([]string{"run", input}, a.flags()...)...)
	require.NoError(t, err)

	swapped := testutil.WriteFile(t, "swapped.csv", "city,age\nJakarta,30\n")
	_, err = executeCommand(t, append([]string{"apply", swapped}, a.flags()...)...)
	assert.ErrorIs(t, err, pipeline.ErrSchemaMismatch)
}

func TestApplyWithoutTransformer(t *testing.T) {
	a := newArtifacts(t)
	input := testutil.WriteFile(t, "people.csv", testutil.AgeCityCSV)
	_, err := executeCommand(t, append([]string{"apply", input}, a.flags()...)...)
	assert.ErrorContains(t, err, "loading transformer")
}

func TestInspect(t *testing.T) {
	a := newArtifacts(t)
	input := testutil.WriteFile(t, "people.csv", testutil.AgeCityCSV)

	out, err := executeCommand(t, append([]string{"inspect", input}, a.flags()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "numeric")
	assert.Contains(t, out, "categorical")
	assert.NotContains(t, out, "Transformer")

	_, err = executeCommand(t, append([]string{"run", input}, a.flags()...)...)
	require.NoError(t, err)

	out, err = executeCommand(t, append([]string{"inspect"}, a.flags()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Transformer")
	assert.Contains(t, out, "encoder")

	_, err = executeCommand(t, "inspect", "--save-path", filepath.Join(a.dir, "absent.gob"))
	assert.ErrorContains(t, err, "nothing to inspect")
}

func TestRunRequiresInput(t *testing.T) {
	a := newArtifacts(t)
	_, err := executeCommand(t, append([]string{"run"}, a.flags()...)...)
	assert.ErrorContains(t, err, "no input dataset")
}

func TestRunInvalidCategoryOrder(t *testing.T) {
	a := newArtifacts(t)
	input := testutil.WriteFile(t, "people.csv", testutil.AgeCityCSV)
	_, err := executeCommand(t, append([]string{"run", input, "--category-order", "random"}, a.flags()...)...)
	assert.ErrorContains(t, err, "invalid configuration")
}
