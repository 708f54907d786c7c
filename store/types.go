//nolint
package store

import "github.com/soter-one/soter"

// Move references for all storage types into this package
// for shorter names everywhere

type KVStore = soter.KVStore
type ReadOnlyKVStore = soter.ReadOnlyKVStore
type CacheableKVStore = soter.CacheableKVStore
type KVCacheWrap = soter.KVCacheWrap
type Batch = soter.Batch
type SetDeleter = soter.SetDeleter
