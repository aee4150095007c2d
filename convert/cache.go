package convert

import "github.com/aspellgo/aspellgo/internal/cache"

// NormCache is the process-wide cache of parsed normalization tables, keyed
// by the charset/encoding name the .cmap data was parsed for. Two Pipelines
// configured for the same encoding share one parsed Table instead of each
// re-parsing its .cmap bytes.
var NormCache = cache.New[*Table]()

// OpenNormCached returns the cached Table for key, parsing it via build on
// a miss. The caller must call NormCache.Release(handle) exactly once when
// done with the Table.
func OpenNormCached(key string, build func() (*Table, error)) (cache.Handle, *Table, error) {
	return NormCache.GetOrCreate(key, build)
}
