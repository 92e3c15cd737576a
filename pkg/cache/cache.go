// Package cache is the client-side entity cache: a keyed store of fetched
// collections with targeted mutation and invalidation. All client-held
// copies of server data live here, and they are mutated only through the
// operations below. Access is serialized by a single mutex, which stands in
// for the single-owner discipline the correctness argument relies on.
package cache

import (
	"strings"
	"sync"
)

// Key addresses one fetched collection or entity view: a logical
// collection name plus its parameters.
type Key struct {
	Collection string
	Param      string
}

// NewKey builds a composite key, joining parameters with "/".
func NewKey(collection string, params ...string) Key {
	return Key{Collection: collection, Param: strings.Join(params, "/")}
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Collection
	}
	return k.Collection + "(" + k.Param + ")"
}

// Well-known collections
const (
	CollectionFeed          = "feed"
	CollectionProfile       = "profile"
	CollectionProfilePosts  = "profile-posts"
	CollectionGroups        = "groups"
	CollectionGroupPosts    = "group-posts"
	CollectionComments      = "comments"
	CollectionStoriesFeed   = "stories-feed"
	CollectionNotifications = "notifications"
	CollectionChats         = "chats"
	CollectionMessages      = "messages"
	CollectionSuggestions   = "suggestions"
)

func FeedKey() Key                   { return NewKey(CollectionFeed) }
func ProfileKey(username string) Key { return NewKey(CollectionProfile, username) }
func ProfilePostsKey(username string) Key {
	return NewKey(CollectionProfilePosts, username)
}
func GroupsKey() Key                  { return NewKey(CollectionGroups) }
func GroupPostsKey(groupID string) Key { return NewKey(CollectionGroupPosts, groupID) }
func CommentsKey(postID string) Key   { return NewKey(CollectionComments, postID) }
func StoriesFeedKey() Key             { return NewKey(CollectionStoriesFeed) }
func NotificationsKey() Key           { return NewKey(CollectionNotifications) }
func ChatsKey() Key                   { return NewKey(CollectionChats) }
func MessagesKey(chatID string) Key   { return NewKey(CollectionMessages, chatID) }
func SuggestionsKey() Key             { return NewKey(CollectionSuggestions) }

type entry struct {
	value   interface{}
	version uint64
	stale   bool
}

// Store is the entity cache. One Store is constructed per session and
// passed to every consumer; there is no package-level instance.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	nextVer uint64
}

// NewStore creates an empty cache
func NewStore() *Store {
	return &Store{entries: make(map[Key]*entry)}
}

// Read returns the cached value for key. ok is false when the key was
// never fetched or has been invalidated since.
func (s *Store) Read(key Key) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found || e.stale {
		return nil, false
	}
	return e.value, true
}

// Write replaces the cached value for key and marks it fresh.
func (s *Store) Write(key Key, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(key, value)
}

func (s *Store) writeLocked(key Key, value interface{}) {
	s.nextVer++
	s.entries[key] = &entry{value: value, version: s.nextVer}
}

// Patch applies a pure transform to the cached value in place. It is a
// silent no-op when the key is absent: an optimistic patch against data
// nobody has fetched has nothing to update. Patching a stale entry still
// applies, so the delta survives until the refetch overwrites it.
// Returns whether a value was patched.
func (s *Store) Patch(key Key, updater func(interface{}) interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return false
	}
	s.nextVer++
	e.value = updater(e.value)
	e.version = s.nextVer
	return true
}

// Invalidate marks the cached value stale. The next Read reports absent,
// which is the signal for subscribers to refetch.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, found := s.entries[key]; found {
		e.stale = true
	}
}

// InvalidateCollection marks every key of a logical collection stale.
func (s *Store) InvalidateCollection(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if k.Collection == collection {
			e.stale = true
		}
	}
}

// Version returns the entry's write version, 0 when absent. Every Write
// and Patch bumps the version; snapshots use it to detect interleaved
// writes.
func (s *Store) Version(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, found := s.entries[key]; found {
		return e.version
	}
	return 0
}

// Snapshot captures the state of one key for later restoration.
type Snapshot struct {
	Key     Key
	Value   interface{}
	Version uint64
	Present bool
	Stale   bool
}

// Snapshot captures key's current value and version.
func (s *Store) Snapshot(key Key) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return Snapshot{Key: key}
	}
	return Snapshot{Key: key, Value: e.value, Version: e.version, Present: true, Stale: e.stale}
}

// RestoreIfVersion writes the snapshot back only when the entry's version
// still equals expect, i.e. nothing else wrote the key in the meantime.
// Returns whether the restore was applied.
func (s *Store) RestoreIfVersion(snap Snapshot, expect uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[snap.Key]
	if !found || e.version != expect {
		return false
	}
	if !snap.Present {
		delete(s.entries, snap.Key)
		return true
	}
	s.nextVer++
	e.value = snap.Value
	e.version = s.nextVer
	e.stale = snap.Stale
	return true
}
