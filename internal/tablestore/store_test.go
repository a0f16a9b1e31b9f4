package tablestore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/models"
)

type widget struct {
	ID   int
	Name string
}

var widgetSchema = Schema[widget]{
	Name:    "widgets",
	Columns: []string{"id", "name"},
	Encode: func(w widget) []string {
		return []string{strconv.Itoa(w.ID), w.Name}
	},
	Decode: func(row []string) (widget, error) {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return widget{}, err
		}
		return widget{ID: id, Name: row[1]}, nil
	},
}

func newTestTable(t *testing.T) (*Table[widget], afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(fs, "data", widgetSchema), fs
}

func TestAllMissingFileIsEmpty(t *testing.T) {
	table, _ := newTestTable(t)

	records, err := table.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReplaceRoundTrip(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()

	want := []widget{{1, "anvil"}, {2, "crate"}, {3, "spring"}}
	require.NoError(t, table.Replace(ctx, want))

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceWritesHeader(t *testing.T) {
	table, fs := newTestTable(t)
	require.NoError(t, table.Replace(context.Background(), []widget{{1, "anvil"}}))

	raw, err := afero.ReadFile(fs, "data/widgets.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,anvil\n", string(raw))
}

func TestReplaceLeavesNoStagingFiles(t *testing.T) {
	table, fs := newTestTable(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, table.Replace(ctx, []widget{{i, "w"}}))
	}

	entries, err := afero.ReadDir(fs, "data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "widgets.csv", entries[0].Name())
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	table, fs := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Append(ctx, widget{1, "anvil"}))
	require.NoError(t, table.Append(ctx, widget{2, "crate"}))

	raw, err := afero.ReadFile(fs, "data/widgets.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,anvil\n2,crate\n", string(raw))

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAppendAfterReplace(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Replace(ctx, []widget{{1, "anvil"}}))
	require.NoError(t, table.Append(ctx, widget{2, "crate"}))

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []widget{{1, "anvil"}, {2, "crate"}}, got)
}

func TestUpdateCommitsResult(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()
	require.NoError(t, table.Replace(ctx, []widget{{1, "anvil"}, {2, "crate"}}))

	updated, err := table.Update(ctx, func(ws []widget) ([]widget, error) {
		return ws[:1], nil
	})
	require.NoError(t, err)
	assert.Len(t, updated, 1)

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []widget{{1, "anvil"}}, got)
}

func TestUpdateErrorLeavesTableUntouched(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()
	want := []widget{{1, "anvil"}}
	require.NoError(t, table.Replace(ctx, want))

	_, err := table.Update(ctx, func(ws []widget) ([]widget, error) {
		return nil, models.NewNotFoundError("widget", 99)
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMalformedRowSurfacesIOError(t *testing.T) {
	table, fs := newTestTable(t)
	require.NoError(t, afero.WriteFile(fs, "data/widgets.csv", []byte("id,name\n1\n"), 0o644))

	_, err := table.All(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeIO))
}

func TestCanceledContextRejectsMutation(t *testing.T) {
	table, _ := newTestTable(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, table.Replace(ctx, nil))
	assert.Error(t, table.Append(ctx, widget{1, "anvil"}))
}

func TestConcurrentAppends(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, table.Append(ctx, widget{i, fmt.Sprintf("w%d", i)}))
		}(i)
	}
	wg.Wait()

	got, err := table.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)
}
