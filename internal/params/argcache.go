package params

import (
	"fmt"

	"github.com/gogpu/vpcomp/internal/cache"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/kernel"
)

// ArgKey addresses the storage of one kernel argument. Layer separates
// the per-layer conversion jobs that run the same kernel; jobs that run
// once per composition use layer 0.
type ArgKey struct {
	Kernel string
	Layer  int
	Index  uint32
}

// ArgCache keeps argument storage alive across compositions so every
// frame of a stream reuses the same buffers.
//
// Storage handed out by the cache is zeroed and rewritten by the next
// build that uses the same key, so a Job built from the cache is valid
// until the next build. ArgCache is not safe for concurrent use by two
// compositors; each compositor owns one.
type ArgCache struct {
	entries *cache.Cache[ArgKey, []byte]
}

// NewArgCache returns a cache keeping at most limit argument buffers,
// 0 for unlimited.
func NewArgCache(limit int) *ArgCache {
	return &ArgCache{entries: cache.New[ArgKey, []byte](limit)}
}

// Storage returns zeroed storage for argument a of the kernel addressed
// by key. A miss allocates a.Size bytes. A hit whose stored size differs
// from a.Size fails with errs.ArgSizeMismatch; the kernel metadata must
// not change size under a live cache.
func (c *ArgCache) Storage(key ArgKey, a kernel.Arg) ([]byte, error) {
	if b, ok := c.entries.Get(key); ok {
		if len(b) != int(a.Size) {
			return nil, fmt.Errorf("kernel %s argument %s: cached %d bytes, declared %d: %w",
				key.Kernel, a.Name, len(b), a.Size, errs.ArgSizeMismatch)
		}
		clear(b)
		return b, nil
	}
	b := make([]byte, a.Size)
	c.entries.Set(key, b)
	return b, nil
}

// Len returns the number of cached buffers.
func (c *ArgCache) Len() int { return c.entries.Len() }

// Stats reports hits and misses since creation or the last Reset.
func (c *ArgCache) Stats() cache.Stats { return c.entries.Stats() }

// Reset drops every buffer. Jobs built before Reset keep their storage.
func (c *ArgCache) Reset() { c.entries.Clear() }
