package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "feed", FeedKey().String())
	assert.Equal(t, "profile(maria)", ProfileKey("maria").String())
	assert.Equal(t, "comments(42)", CommentsKey("42").String())
}

func TestKeyComposite(t *testing.T) {
	a := NewKey("messages", "7")
	b := NewKey("messages", "7")
	c := NewKey("messages", "8")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestReadWriteRoundTrip(t *testing.T) {
	s := NewStore()
	key := GroupsKey()

	_, ok := s.Read(key)
	assert.False(t, ok, "read before write should miss")

	s.Write(key, "value")
	got, ok := s.Read(key)
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestPatchAbsentKeyIsNoOp(t *testing.T) {
	s := NewStore()

	called := false
	patched := s.Patch(FeedKey(), func(v interface{}) interface{} {
		called = true
		return v
	})

	assert.False(t, patched)
	assert.False(t, called, "updater must not run for an absent key")
	_, ok := s.Read(FeedKey())
	assert.False(t, ok, "patch must not create an entry")
}

func TestPatchTransformsValue(t *testing.T) {
	s := NewStore()
	s.Write(FeedKey(), 1)

	patched := s.Patch(FeedKey(), func(v interface{}) interface{} {
		return v.(int) + 1
	})
	require.True(t, patched)

	got, ok := s.Read(FeedKey())
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestInvalidateHidesValueUntilRewrite(t *testing.T) {
	s := NewStore()
	key := NotificationsKey()
	s.Write(key, "old")

	s.Invalidate(key)
	_, ok := s.Read(key)
	assert.False(t, ok, "stale entry must read as absent")

	s.Write(key, "new")
	got, ok := s.Read(key)
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestPatchAppliesToStaleEntry(t *testing.T) {
	s := NewStore()
	key := CommentsKey("9")
	s.Write(key, 10)
	s.Invalidate(key)

	// The optimistic delta still lands so it survives until the refetch
	// overwrites the entry.
	patched := s.Patch(key, func(v interface{}) interface{} {
		return v.(int) + 1
	})
	assert.True(t, patched)

	_, ok := s.Read(key)
	assert.False(t, ok, "patching must not resurrect a stale entry")
}

func TestInvalidateCollection(t *testing.T) {
	s := NewStore()
	s.Write(GroupPostsKey("1"), "a")
	s.Write(GroupPostsKey("2"), "b")
	s.Write(GroupsKey(), "c")

	s.InvalidateCollection(CollectionGroupPosts)

	_, ok := s.Read(GroupPostsKey("1"))
	assert.False(t, ok)
	_, ok = s.Read(GroupPostsKey("2"))
	assert.False(t, ok)
	_, ok = s.Read(GroupsKey())
	assert.True(t, ok, "other collections stay fresh")
}

func TestVersionBumpsOnWriteAndPatch(t *testing.T) {
	s := NewStore()
	key := FeedKey()

	assert.Zero(t, s.Version(key))

	s.Write(key, 1)
	v1 := s.Version(key)
	assert.NotZero(t, v1)

	s.Patch(key, func(v interface{}) interface{} { return v })
	v2 := s.Version(key)
	assert.Greater(t, v2, v1)
}

func TestRestoreIfVersionRestoresUntouchedEntry(t *testing.T) {
	s := NewStore()
	key := FeedKey()
	s.Write(key, "before")

	snap := s.Snapshot(key)
	s.Patch(key, func(interface{}) interface{} { return "optimistic" })
	postApply := s.Version(key)

	ok := s.RestoreIfVersion(snap, postApply)
	require.True(t, ok)

	got, found := s.Read(key)
	require.True(t, found)
	assert.Equal(t, "before", got)
}

func TestRestoreIfVersionRefusesAfterInterleavedWrite(t *testing.T) {
	s := NewStore()
	key := FeedKey()
	s.Write(key, "before")

	snap := s.Snapshot(key)
	s.Patch(key, func(interface{}) interface{} { return "optimistic" })
	postApply := s.Version(key)

	// A different writer lands after the optimistic patch.
	s.Write(key, "newer")

	ok := s.RestoreIfVersion(snap, postApply)
	assert.False(t, ok, "restore must not clobber the newer write")

	got, found := s.Read(key)
	require.True(t, found)
	assert.Equal(t, "newer", got)
}

func TestRestoreIfVersionDeletesWhenSnapshotWasAbsent(t *testing.T) {
	s := NewStore()
	key := ProfileKey("sam")

	snap := s.Snapshot(key)
	assert.False(t, snap.Present)

	s.Write(key, "created optimistically")
	postApply := s.Version(key)

	ok := s.RestoreIfVersion(snap, postApply)
	require.True(t, ok)

	_, found := s.Read(key)
	assert.False(t, found)
}

func TestRestoreIfVersionPreservesStaleFlag(t *testing.T) {
	s := NewStore()
	key := ChatsKey()
	s.Write(key, "value")
	s.Invalidate(key)

	snap := s.Snapshot(key)
	require.True(t, snap.Stale)

	s.Patch(key, func(interface{}) interface{} { return "patched" })
	postApply := s.Version(key)

	require.True(t, s.RestoreIfVersion(snap, postApply))

	_, found := s.Read(key)
	assert.False(t, found, "restored entry must stay stale")
}
