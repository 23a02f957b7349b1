package stuffit

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

// forkCache is an optional, process-wide cache of fully-decoded,
// CRC-verified fork bytes, keyed by archive identity and fork offset.
// This decoder always produces a whole fork in one call, so there is
// nothing incremental to checkpoint; only the finished result is cached.
type forkCache struct {
	bc *bigcache.BigCache
}

var (
	sharedCacheOnce sync.Once
	sharedCache     *forkCache
	sharedCacheErr  error
)

// newForkCache returns the process-wide fork cache, creating it on the
// first call; every archive opened with CacheDecodedForks shares it.
func newForkCache() (*forkCache, error) {
	sharedCacheOnce.Do(func() {
		bc, err := bigcache.New(context.Background(), bigcache.Config{
			HardMaxCacheSize: 256, // megabytes
			Shards:           256,
		})
		if err != nil {
			sharedCacheErr = err
			return
		}
		sharedCache = &forkCache{bc: bc}
	})
	return sharedCache, sharedCacheErr
}

var archiveUniq uint64

func nextArchiveID() uint64 {
	return atomic.AddUint64(&archiveUniq, 1)
}

func (c *forkCache) key(archiveID uint64, offset int64) string {
	h := xxhash.New()
	var buf [16]byte
	for i := range 8 {
		buf[i] = byte(archiveID >> (8 * i))
		buf[8+i] = byte(offset >> (8 * i))
	}
	h.Write(buf[:])
	return strconv.FormatUint(h.Sum64(), 16)
}

func (c *forkCache) get(archiveID uint64, offset int64) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.bc.Get(c.key(archiveID, offset))
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *forkCache) put(archiveID uint64, offset int64, data []byte) {
	if c == nil {
		return
	}
	_ = c.bc.Set(c.key(archiveID, offset), data)
}
