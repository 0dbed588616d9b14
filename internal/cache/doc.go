// Package cache memoizes the outputs of raster sources by fingerprint.
//
// A Store holds bounded LRU tables of formats, data windows and channel data
// tiles, keyed by the fingerprints the sources report. Because fingerprints
// name content rather than objects, one Store can be shared by any number of
// sources: two transforms with equal parameters over equal inputs share
// their tiles.
//
// Concurrent requests for the same fingerprint are collapsed into a single
// computation with singleflight. Fingerprints themselves are never cached;
// computing them is cheap and always delegated to the wrapped source.
//
// # Example Usage
//
//	store, err := cache.NewStore(4096)
//	if err != nil {
//	    return err
//	}
//	src := store.Wrap(transform.New(in, params, "lanczos", nil))
//	img, err := raster.ToImage(ctx, src, 0)
package cache
