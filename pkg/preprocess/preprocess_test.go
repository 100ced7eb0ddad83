package preprocess_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tabprep/internal/testutil"
	"tabprep/pkg/data"
	"tabprep/pkg/dataprep"
	"tabprep/pkg/pipeline"
	"tabprep/pkg/preprocess"
	"tabprep/pkg/stats"
)

func paths(t *testing.T) (savePath, headerPath string) {
	dir := t.TempDir()
	return filepath.Join(dir, "preprocessor.gob"), filepath.Join(dir, "header.csv")
}

func TestRunAgeCity(t *testing.T) {
	ds := testutil.MustReadCSV(t, testutil.AgeCityCSV)
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath, preprocess.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	rows, cols := res.Transformed.Dims()
	assert.Equal(t, 2, cols)
	assert.Equal(t, ds.NumRows()-1, rows)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, rows, res.Cleaned.NumRows())

	header, err := os.ReadFile(headerPath)
	require.NoError(t, err)
	assert.Equal(t, "age,city\n", string(header))

	age, _ := res.Cleaned.Column("age")
	assert.Equal(t, 35.0, age.Floats[2], "missing age is the pre-filter mean")
	assert.NotContains(t, age.Floats, 90.0)
	city, _ := res.Cleaned.Column("city")
	assert.Equal(t, "Jakarta", city.Strings[4], "missing city is the mode")
	assert.Zero(t, city.MissingCount())

	// caller's dataset is untouched
	origAge, _ := ds.Column("age")
	assert.True(t, math.IsNaN(origAge.Floats[2]))
	assert.Equal(t, 13, ds.NumRows())
}

func TestRunScalesEveryOutputColumn(t *testing.T) {
	ds := testutil.MustReadCSV(t, testutil.AgeCityCSV)
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)

	_, cols := res.Transformed.Dims()
	for j := range cols {
		col := mat.Col(nil, j, res.Transformed)
		assert.InDelta(t, 0, stats.Mean(col), 1e-9)
		assert.InDelta(t, 1, stats.Std(col), 1e-9)
	}
}

func TestRunPersistsReusableTransformer(t *testing.T) {
	ds := testutil.MustReadCSV(t, testutil.AgeCityCSV)
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)

	ct, err := pipeline.Load(savePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, ct.Numeric)
	assert.Equal(t, []string{"city"}, ct.Categorical)

	again, err := ct.Transform(res.Cleaned)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(res.Transformed, again, 1e-12))

	require.NoError(t, pipeline.ValidateHeader(headerPath, ds.Names()))
}

func TestRunCleanNumericDataUnchanged(t *testing.T) {
	ds := testutil.MustReadCSV(t, "a,b\n1,10\n2,12\n3,11\n4,13\n")
	savePath, headerPath := paths(t)

	transformed, cleaned, err := preprocess.Preprocess(ds, savePath, headerPath)
	require.NoError(t, err)
	assert.Equal(t, ds, cleaned)
	rows, cols := transformed.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
}

func TestRunOutputOrderNumericFirst(t *testing.T) {
	ds := testutil.MustReadCSV(t, "team,x,grade,y\nred,1,A,5\nblue,2,B,6\nred,3,A,7\n")
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "team", "grade"}, res.Transformer.OutputNames())
	assert.Equal(t, dataprep.Partition{Numeric: []string{"x", "y"}, Categorical: []string{"team", "grade"}}, res.Partition)
}

func TestRunCategoricalOnlySkipsOutlierFilter(t *testing.T) {
	ds := testutil.MustReadCSV(t, "c\nA\nB\nA\nNA\n")
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)
	assert.Zero(t, res.Dropped)
	rows, cols := res.Transformed.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 1, cols)
}

func TestRunExcludesUnsupportedColumns(t *testing.T) {
	ds, err := data.ReadCSV(
		testutil.Reader("age,joined\n1,2024-01-01\n2,\n3,2024-02-01\n"),
		data.Options{Kinds: map[string]data.Kind{"joined": data.Unsupported}},
	)
	require.NoError(t, err)
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)
	_, cols := res.Transformed.Dims()
	assert.Equal(t, 1, cols)
	assert.Equal(t, []string{"joined"}, res.Partition.Unsupported)

	joined, ok := res.Cleaned.Column("joined")
	require.True(t, ok)
	assert.True(t, joined.IsMissing(1), "unsupported columns are not imputed")

	header, err := os.ReadFile(headerPath)
	require.NoError(t, err)
	assert.Equal(t, "age,joined\n", string(header))
}

func TestRunExcludesBooleanColumns(t *testing.T) {
	ds := testutil.MustReadCSV(t, "age,active\n20,True\n21,False\n22,True\n23,True\n")
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"age"}, res.Partition.Numeric)
	assert.Empty(t, res.Partition.Categorical)
	assert.Equal(t, []string{"active"}, res.Partition.Unsupported)
	assert.Equal(t, []string{"age"}, res.Transformer.OutputNames())

	rows, cols := res.Transformed.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 1, cols)

	active, ok := res.Cleaned.Column("active")
	require.True(t, ok)
	assert.Equal(t, []string{"True", "False", "True", "True"}, active.Strings)
}

func TestRunIQRFactorOption(t *testing.T) {
	ds := testutil.MustReadCSV(t, "v\n1\n2\n3\n4\n5\n100\n")
	savePath, headerPath := paths(t)

	res, err := preprocess.Run(ds, savePath, headerPath)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dropped)

	res, err = preprocess.Run(ds, savePath, headerPath, preprocess.WithIQRFactor(100))
	require.NoError(t, err)
	assert.Zero(t, res.Dropped)
}

func TestRunOutlierHook(t *testing.T) {
	ds := testutil.MustReadCSV(t, "v\n1\n2\n3\n4\n5\n100\n")
	savePath, headerPath := paths(t)

	var before, after int
	_, err := preprocess.Run(ds, savePath, headerPath, preprocess.WithOutlierHook(
		func(b, a *data.Dataset, p dataprep.Partition) {
			before, after = b.NumRows(), a.NumRows()
			assert.Equal(t, []string{"v"}, p.Numeric)
		}))
	require.NoError(t, err)
	assert.Equal(t, 6, before)
	assert.Equal(t, 5, after)
}

func TestRunFailures(t *testing.T) {
	t.Run("all missing column", func(t *testing.T) {
		ds := testutil.MustReadCSV(t, "a,b\n1,\n2,\n")
		savePath, headerPath := paths(t)

		_, err := preprocess.Run(ds, savePath, headerPath)
		assert.ErrorIs(t, err, dataprep.ErrAllMissing)
		// header is written before imputation fails
		assert.FileExists(t, headerPath)
		assert.NoFileExists(t, savePath)
	})

	t.Run("unwritable header path", func(t *testing.T) {
		ds := testutil.MustReadCSV(t, "a\n1\n2\n")
		savePath, _ := paths(t)

		_, err := preprocess.Run(ds, savePath, filepath.Join(t.TempDir(), "no", "such", "header.csv"))
		assert.Error(t, err)
	})

	t.Run("unwritable save path", func(t *testing.T) {
		ds := testutil.MustReadCSV(t, "a\n1\n2\n")
		_, headerPath := paths(t)

		_, err := preprocess.Run(ds, filepath.Join(t.TempDir(), "no", "such", "x.gob"), headerPath)
		assert.Error(t, err)
		assert.FileExists(t, headerPath)
	})

	t.Run("nothing to transform", func(t *testing.T) {
		ds, err := data.New(data.NewTextColumn("d", data.Unsupported, []string{"x"}, nil))
		require.NoError(t, err)
		savePath, headerPath := paths(t)

		_, err = preprocess.Run(ds, savePath, headerPath)
		assert.ErrorIs(t, err, pipeline.ErrNoColumns)
	})
}
