package baseline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oralscan/internal/semantics"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "baseline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTags(side semantics.Side, toothType semantics.ToothType, region semantics.Region) semantics.Tags {
	return semantics.Tags{
		Side:       side,
		ToothType:  toothType,
		Region:     region,
		Issues:     []semantics.Issue{semantics.IssueNone},
		Confidence: 0.8,
	}
}

func TestStoreAppendAndSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := store.NewSession(ctx, "user-1", ZoneUpperFront)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	stored, err := store.AppendFrames(ctx, session, []Frame{
		{FrameIndex: 10, Timestamp: 0.4, ImagePath: "kf-10.jpg",
			Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionGum)},
		{FrameIndex: 40, Timestamp: 1.6, ImagePath: "kf-40.jpg",
			Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionOcclusal)},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, ZoneUpperFront, stored[0].Zone)
	require.NotZero(t, stored[0].ID)

	snapshot, err := store.LoadSnapshot(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, snapshot.HasFrames())
	require.Equal(t, []Zone{ZoneUpperFront}, snapshot.Zones())

	frames := snapshot.FramesForZone(ZoneUpperFront)
	require.Len(t, frames, 2)
	require.Equal(t, semantics.RegionGum, frames[0].Tags.Region)
	require.Equal(t, []semantics.Issue{semantics.IssueNone}, frames[0].Tags.Issues)
}

func TestStoreAppendValidatesInput(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.NewSession(ctx, "", ZoneUpperFront)
	require.Error(t, err)

	_, err = store.NewSession(ctx, "user-1", Zone(9))
	require.Error(t, err)

	_, err = store.AppendFrames(ctx, nil, nil)
	require.Error(t, err)
}

func TestStoreCoverageAndRepresentative(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, zone := range []Zone{ZoneUpperRight, ZoneLowerFront} {
		session, err := store.NewSession(ctx, "user-1", zone)
		require.NoError(t, err)

		_, err = store.AppendFrames(ctx, session, []Frame{
			{FrameIndex: 0, ImagePath: "a.jpg", Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionGum)},
			{FrameIndex: 1, ImagePath: "b.jpg", Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionGum)},
			{FrameIndex: 2, ImagePath: "c.jpg", Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionGum)},
		})
		require.NoError(t, err)
	}

	snapshot, err := store.LoadSnapshot(ctx, "user-1")
	require.NoError(t, err)

	coverage := snapshot.Coverage()
	require.Len(t, coverage, ZoneCount)
	require.True(t, coverage[ZoneUpperRight])
	require.True(t, coverage[ZoneLowerFront])
	require.False(t, coverage[ZoneOcclusal])

	reps := snapshot.Representative()
	require.Len(t, reps, 2)
	require.Equal(t, 1, reps[ZoneUpperRight].FrameIndex, "middle frame is the representative")
}

func TestStoreSnapshotOrdersByCaptureTime(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := store.NewSession(ctx, "user-1", ZoneOcclusal)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err = store.AppendFrames(ctx, session, []Frame{
		{FrameIndex: 2, ImagePath: "later.jpg", CapturedAt: base.Add(time.Hour),
			Tags: testTags(semantics.SideUpper, semantics.ToothPosterior, semantics.RegionOcclusal)},
		{FrameIndex: 1, ImagePath: "earlier.jpg", CapturedAt: base,
			Tags: testTags(semantics.SideUpper, semantics.ToothPosterior, semantics.RegionOcclusal)},
	})
	require.NoError(t, err)

	snapshot, err := store.LoadSnapshot(ctx, "user-1")
	require.NoError(t, err)

	frames := snapshot.FramesForZone(ZoneOcclusal)
	require.Len(t, frames, 2)
	require.Equal(t, "earlier.jpg", frames[0].ImagePath)
}

func TestStoreSessionsAndUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, userID := range []string{"user-b", "user-a"} {
		session, err := store.NewSession(ctx, userID, ZoneUpperFront)
		require.NoError(t, err)
		_, err = store.AppendFrames(ctx, session, []Frame{
			{FrameIndex: 0, ImagePath: "f.jpg", Tags: testTags(semantics.SideUpper, semantics.ToothAnterior, semantics.RegionGum)},
		})
		require.NoError(t, err)
	}

	sessions, err := store.Sessions(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, ZoneUpperFront, sessions[0].Zone)

	users, err := store.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"user-a", "user-b"}, users)
}

func TestStoreReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.db")
	ctx := context.Background()

	store, err := OpenPath(path)
	require.NoError(t, err)
	session, err := store.NewSession(ctx, "user-1", ZoneLowerLeft)
	require.NoError(t, err)
	_, err = store.AppendFrames(ctx, session, []Frame{
		{FrameIndex: 0, ImagePath: "f.jpg", Tags: testTags(semantics.SideLower, semantics.ToothPosterior, semantics.RegionBuccal)},
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	snapshot, err := reopened.LoadSnapshot(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, snapshot.HasFrames())
}
