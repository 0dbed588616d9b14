package cache

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// DefaultTiles is the tile capacity used when NewStore is given a
// non-positive size.
const DefaultTiles = 4096

// metadataEntries bounds the format and data window tables.
const metadataEntries = 1024

// Stats reports cache effectiveness since the store was created or last
// purged.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Tiles  int    `json:"tiles"`
}

// Store is a fingerprint-keyed memo table shared by wrapped sources. It is
// safe for concurrent use.
type Store struct {
	formats *lru.Cache[raster.Fingerprint, geom.Format]
	windows *lru.Cache[raster.Fingerprint, image.Rectangle]
	tiles   *lru.Cache[raster.Fingerprint, *raster.Tile]
	group   singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewStore creates a store holding at most tiles channel data tiles.
func NewStore(tiles int) (*Store, error) {
	if tiles <= 0 {
		tiles = DefaultTiles
	}
	formats, err := lru.New[raster.Fingerprint, geom.Format](metadataEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create format cache: %w", err)
	}
	windows, err := lru.New[raster.Fingerprint, image.Rectangle](metadataEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create data window cache: %w", err)
	}
	tileCache, err := lru.New[raster.Fingerprint, *raster.Tile](tiles)
	if err != nil {
		return nil, fmt.Errorf("failed to create tile cache: %w", err)
	}
	return &Store{formats: formats, windows: windows, tiles: tileCache}, nil
}

// Wrap returns src with its format, data window and channel data memoized in
// the store.
func (s *Store) Wrap(src raster.Source) *Source {
	return &Source{store: s, src: src}
}

// Stats returns the current hit and miss counts.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Tiles:  s.tiles.Len(),
	}
}

// Purge empties every table and resets the counters.
func (s *Store) Purge() {
	s.formats.Purge()
	s.windows.Purge()
	s.tiles.Purge()
	s.hits.Store(0)
	s.misses.Store(0)
}

// memo looks key up in c, computing and storing it on a miss. Concurrent
// misses on the same key share one call to compute. The shared call runs
// without the caller's cancellation, so one caller giving up cannot fail the
// others; a cancelled caller stops waiting and returns its context error.
func memo[V any](ctx context.Context, s *Store, c *lru.Cache[raster.Fingerprint, V], kind raster.Kind, key raster.Fingerprint, compute func(context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.Get(key); ok {
		s.hits.Add(1)
		return v, nil
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(kind.String()+":"+key.String(), func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			s.hits.Add(1)
			return v, nil
		}
		s.misses.Add(1)
		v, err := compute(shared)
		if err != nil {
			return nil, err
		}
		c.Add(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(V), nil
	}
}
