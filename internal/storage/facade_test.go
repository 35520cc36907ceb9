package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimtrainer/trainlog/internal/metrics"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

// brokenStore fails every operation, simulating an unusable durable backend.
type brokenStore struct {
	err error
}

func (bs *brokenStore) Name() string                            { return "broken" }
func (bs *brokenStore) Read(_ context.Context) ([]byte, error)  { return nil, bs.err }
func (bs *brokenStore) Write(_ context.Context, _ []byte) error { return bs.err }
func (bs *brokenStore) Delete(_ context.Context) error          { return bs.err }
func (bs *brokenStore) Close() error                            { return nil }

func newTestFacade(t *testing.T, withDurable bool) (*Facade, Store, Store) {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var durable Store
	if withDurable {
		badgerStore, err := NewInMemoryBadgerStore()
		require.NoError(t, err)
		durable = badgerStore
	}

	f := NewFacade(fileStore, durable, metrics.NewTestManager())
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})
	return f, fileStore, durable
}

func mustMarshalDoc(t *testing.T, doc *userdata.Document) []byte {
	t.Helper()
	data, err := userdata.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestFacadeLoadFreshStart(t *testing.T) {
	ctx := context.Background()
	f, fileStore, durable := newTestFacade(t, true)

	assert.Equal(t, StateUninitialized, f.State())
	require.NoError(t, f.Load(ctx))
	assert.Equal(t, StateReady, f.State())

	doc, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, userdata.DefaultStartDate, doc.StartDate)
	assert.Equal(t, userdata.CurrentVersion, doc.Version)
	assert.Empty(t, doc.Logs)

	// the default document got persisted to both backends
	f.waitPendingWrites()
	_, err = fileStore.Read(ctx)
	require.NoError(t, err)
	_, err = durable.Read(ctx)
	require.NoError(t, err)
}

func TestFacadeLoadBeforeReady(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFacade(t, true)

	_, err := f.Document(ctx)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, f.SkipDay(ctx, "2026-02-02"), ErrNotReady)
	assert.ErrorIs(t, f.Import(ctx, []byte(`{}`)), ErrNotReady)
}

func TestFacadeLoadDoubleLoad(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFacade(t, true)

	require.NoError(t, f.Load(ctx))
	require.Error(t, f.Load(ctx))
}

func TestFacadeLoadFromFileSeedsDurable(t *testing.T) {
	ctx := context.Background()
	f, fileStore, durable := newTestFacade(t, true)

	doc := userdata.NewDefaultDocument("2026-03-02")
	require.NoError(t, fileStore.Write(ctx, mustMarshalDoc(t, doc)))

	require.NoError(t, f.Load(ctx))

	loaded, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", loaded.StartDate)

	// the file-only document got copied into the durable store
	f.waitPendingWrites()
	data, err := durable.Read(ctx)
	require.NoError(t, err)
	durableDoc, err := userdata.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", durableDoc.StartDate)
}

func TestFacadeLoadPrefersDurable(t *testing.T) {
	ctx := context.Background()
	f, fileStore, durable := newTestFacade(t, true)

	fileDoc := userdata.NewDefaultDocument("2026-02-02")
	require.NoError(t, fileStore.Write(ctx, mustMarshalDoc(t, fileDoc)))
	durableDoc := userdata.NewDefaultDocument("2026-03-02")
	require.NoError(t, durable.Write(ctx, mustMarshalDoc(t, durableDoc)))

	require.NoError(t, f.Load(ctx))

	loaded, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", loaded.StartDate)
}

func TestFacadeLoadWithoutDurable(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFacade(t, false)

	require.NoError(t, f.Load(ctx))
	assert.Equal(t, StateReady, f.State())
	assert.False(t, f.DurableAlive())

	// mutations work fine in file-only mode
	require.NoError(t, f.SkipDay(ctx, "2026-02-03"))
	doc, err := f.Document(ctx)
	require.NoError(t, err)
	assert.True(t, doc.Logs["2026-02-03"].Skipped)
}

func TestFacadeLoadDurableBrokenFallsBack(t *testing.T) {
	ctx := context.Background()

	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	fileDoc := userdata.NewDefaultDocument("2026-02-02")
	require.NoError(t, fileStore.Write(ctx, mustMarshalDoc(t, fileDoc)))

	f := NewFacade(fileStore, &brokenStore{err: errors.New("disk on fire")}, metrics.NewTestManager())
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	require.NoError(t, f.Load(ctx))
	assert.Equal(t, StateReady, f.State())
	assert.False(t, f.DurableAlive(), "a broken durable store disables it for the session")

	loaded, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02", loaded.StartDate)
}

func TestFacadeLoadCorruptFileStartsOver(t *testing.T) {
	ctx := context.Background()
	f, fileStore, _ := newTestFacade(t, false)

	require.NoError(t, fileStore.Write(ctx, []byte(`{corrupt`)))

	require.NoError(t, f.Load(ctx), "corrupt persisted data must not fail the load")
	assert.Equal(t, StateReady, f.State())

	doc, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, userdata.DefaultStartDate, doc.StartDate)
	assert.Empty(t, doc.Logs)

	// the default document replaced the corrupt file
	data, err := fileStore.Read(ctx)
	require.NoError(t, err)
	_, err = userdata.Unmarshal(data)
	assert.NoError(t, err)
}

func TestFacadeLoadCorruptDurableFallsBackToFile(t *testing.T) {
	ctx := context.Background()
	f, fileStore, durable := newTestFacade(t, true)

	fileDoc := userdata.NewDefaultDocument("2026-03-02")
	require.NoError(t, fileStore.Write(ctx, mustMarshalDoc(t, fileDoc)))
	require.NoError(t, durable.Write(ctx, []byte(`{corrupt`)))

	require.NoError(t, f.Load(ctx))
	assert.False(t, f.DurableAlive(), "a corrupt durable copy disables the store for the session")

	doc, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", doc.StartDate, "the file floor survives a corrupt durable copy")
}

func TestFacadeLoadMigratesStaleDocument(t *testing.T) {
	ctx := context.Background()
	f, fileStore, _ := newTestFacade(t, true)

	// a v1.0 document from the 2025 program, never logged into
	require.NoError(t, fileStore.Write(ctx, []byte(`{"startDate":"2025-06-09","logs":{},"version":"1.0"}`)))

	require.NoError(t, f.Load(ctx))

	doc, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, userdata.CurrentVersion, doc.Version)
	assert.Equal(t, userdata.DefaultStartDate, doc.StartDate)
	assert.NotNil(t, doc.ExerciseWeights)

	// the migrated form got persisted back
	data, err := fileStore.Read(ctx)
	require.NoError(t, err)
	persisted, err := userdata.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, userdata.CurrentVersion, persisted.Version)
}

func TestFacadeDocumentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFacade(t, false)
	require.NoError(t, f.Load(ctx))

	doc, err := f.Document(ctx)
	require.NoError(t, err)
	doc.StartDate = "1999-01-01"
	doc.Logs["2026-02-02"] = &userdata.DayLog{Completed: true}

	fresh, err := f.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, userdata.DefaultStartDate, fresh.StartDate)
	assert.Empty(t, fresh.Logs)
}
