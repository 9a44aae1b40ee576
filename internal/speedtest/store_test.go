package speedtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SpeedAtlas/SA-Backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	store := NewStore(conn)
	require.NoError(t, store.Migrate())
	return store
}

func testResult(submissionID, address string, download float64, ts time.Time) *Result {
	return &Result{
		Location:         "Tokyo, Kanto, Japan",
		City:             "Tokyo",
		Country:          "Japan",
		DownloadSpeed:    download,
		UploadSpeed:      40,
		Ping:             12,
		Timestamp:        ts,
		SubmissionMinute: ts.Format("2006-01-02T15:04"),
		SubmissionID:     submissionID,
		Address:          address,
	}
}

func TestStore_InsertAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, testResult("s1", "0xA", 100, now.Add(-time.Minute))))
	require.NoError(t, store.Insert(ctx, testResult("s2", "0xB", 200, now)))

	results, err := store.Search(ctx, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Most recent first.
	assert.Equal(t, "s2", results[0].SubmissionID)
	assert.Equal(t, "s1", results[1].SubmissionID)

	// IDs are assigned in insertion order.
	assert.Less(t, results[1].ID, results[0].ID)
}

func TestStore_InsertDuplicateSubmissionID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, testResult("dup", "0xA", 100, now)))

	// Same submission ID, different payload: still a duplicate.
	err := store.Insert(ctx, testResult("dup", "0xB", 999, now.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	results, err := store.Search(ctx, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0xA", results[0].Address)
}

func TestStore_SearchWithConds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	tokyo := testResult("s1", "0xA", 100, now)
	require.NoError(t, store.Insert(ctx, tokyo))

	london := testResult("s2", "0xB", 200, now)
	london.Location = "London, England, UK"
	london.City = "London"
	london.Country = "UK"
	require.NoError(t, store.Insert(ctx, london))

	results, err := store.Search(ctx, []Cond{{Column: "city", Op: OpLike, Value: "ondo"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s2", results[0].SubmissionID)

	results, err = store.Search(ctx, []Cond{{Column: "address", Op: OpEq, Value: "0xA"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].SubmissionID)

	results, err = store.Search(ctx, []Cond{
		{Column: "country", Op: OpLike, Value: "UK"},
		{Column: "address", Op: OpEq, Value: "0xA"},
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_SearchLikeIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := testResult("s1", "0xA", 100, time.Now().UTC())
	require.NoError(t, store.Insert(ctx, r))

	results, err := store.Search(ctx, []Cond{{Column: "city", Op: OpLike, Value: "tokyo"}})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_SearchRejectsUnknownColumn(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []Cond{{Column: "address; DROP TABLE", Op: OpEq, Value: "x"}})
	assert.Error(t, err)
}

func TestStore_NullableCoordinatesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	withCoords := testResult("s1", "0xA", 100, time.Now().UTC())
	lat, lng := 35.6895, 139.6917
	withCoords.Latitude = &lat
	withCoords.Longitude = &lng
	require.NoError(t, store.Insert(ctx, withCoords))
	require.NoError(t, store.Insert(ctx, testResult("s2", "0xB", 100, time.Now().UTC())))

	results, err := store.Search(ctx, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := map[string]Result{}
	for _, r := range results {
		byID[r.SubmissionID] = r
	}

	s1 := byID["s1"]
	s2 := byID["s2"]
	require.True(t, s1.HasCoordinates())
	assert.Equal(t, lat, *s1.Latitude)
	assert.False(t, s2.HasCoordinates())
}
