package lang

import "github.com/aspellgo/aspellgo/internal/cache"

// Cache is the process-wide cache of constructed Languages, keyed by
// language name. Setup derives a 256-entry clean/case table and a compiled
// soundslike transform from the raw data bundle; OpenCached lets every
// Dictionary and speller.Coordinator built for the same language share one
// Language instead of re-running Setup per caller.
var Cache = cache.New[*Language]()

// OpenCached returns the cached Language for name, constructing it via
// build on a miss. The caller must call Cache.Release(handle) exactly once
// when done with the Language.
func OpenCached(name string, build func() (*Language, error)) (cache.Handle, *Language, error) {
	return Cache.GetOrCreate(name, build)
}
