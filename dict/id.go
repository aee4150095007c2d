package dict

import (
	"os"

	"github.com/aspellgo/aspellgo/internal/cache"
	"github.com/google/uuid"
)

// ID is a dictionary's cache key ("Dictionary identity and
// caching"): on filesystems with stable inode numbers it is (dev, inode);
// otherwise it falls back to a process-local UUID so two Open calls against
// a path that can't report a stable file identity still get distinct,
// comparable keys rather than colliding on path string alone.
type ID struct {
	Path       string
	DevInode   string // "<dev>:<ino>" when the platform reports it, else ""
	fallbackID string
}

// String is the cache key string GetOrCreate indexes by: two IDs are equal
// iff their file identities match.
func (id ID) String() string {
	if id.DevInode != "" {
		return "inode:" + id.DevInode
	}
	if id.fallbackID != "" {
		return "uuid:" + id.fallbackID
	}
	return "path:" + id.Path
}

// IdentityFor computes the ID for path, using the OS file identity when
// Stat succeeds and the platform's FileInfo exposes one, or a fresh UUID
// otherwise. The UUID, not the bare path, is deliberately chosen as the
// fallback so tests can construct two IDs for the same path that are
// intentionally distinct (e.g. to simulate a filesystem without inodes).
func IdentityFor(path string) ID {
	id := ID{Path: path}
	if st, err := os.Stat(path); err == nil {
		if di, ok := devInode(st); ok {
			id.DevInode = di
			return id
		}
	}
	id.fallbackID = uuid.NewString()
	return id
}

// DictCache is the process-wide cache of opened Dictionaries, keyed by ID
//.
var DictCache = cache.New[Dictionary]()

// OpenReadonlyCached opens (or reuses) a Readonly dictionary, deduplicating
// by file identity so two paths resolving to the same inode return the
// same in-memory dictionary and share its reference count.
func OpenReadonlyCached(path string, build func() (Dictionary, error)) (cache.Handle, Dictionary, error) {
	id := IdentityFor(path)
	return DictCache.GetOrCreate(id.String(), func() (Dictionary, error) {
		return build()
	})
}
