package testutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tabprep/pkg/data"
)

// AgeCityCSV has a numeric column with one missing value and one extreme
// outlier (age 90) and a categorical column with one missing value. The
// imputed age is 35 and the imputed city is Jakarta.
const AgeCityCSV = `age,city
25,Jakarta
30,Bandung
,Jakarta
28,Surabaya
35,
32,Bandung
29,Jakarta
31,Surabaya
27,Bandung
33,Jakarta
26,Surabaya
34,Bandung
90,Jakarta
`

// MustReadCSV parses CSV text into a dataset.
func MustReadCSV(t testing.TB, text string) *data.Dataset {
	t.Helper()
	ds, err := data.ReadCSV(strings.NewReader(text), data.Options{})
	require.NoError(t, err)
	return ds
}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// Reader wraps CSV text for data.ReadCSV.
func Reader(text string) io.Reader {
	return strings.NewReader(text)
}
