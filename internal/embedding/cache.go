package embedding

import (
	"context"
	"crypto/sha256"
	"sync"
)

// Cached memoizes vectors by backend and text so skill names shared across a
// batch are embedded once.
//
// Every call returns vectors of a single backend. When the inner embedder
// switches backend between the cache lookup and the embedding of the misses,
// the whole call is embedded again by the new backend.
type Cached struct {
	inner Embedder

	cacheMu sync.RWMutex
	vectors map[[sha256.Size]byte][]float32
}

// NewCached wraps inner with an in-memory cache.
func NewCached(inner Embedder) *Cached {
	return &Cached{inner: inner, vectors: make(map[[sha256.Size]byte][]float32)}
}

func (c *Cached) Name() string { return c.inner.Name() }

func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	backend := c.serving()
	out := make([][]float32, len(texts))

	var missing []int
	c.cacheMu.RLock()
	for i, text := range texts {
		if v, ok := c.vectors[cacheKey(backend, text)]; ok {
			out[i] = v
			continue
		}
		missing = append(missing, i)
	}
	c.cacheMu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	pending := make([]string, len(missing))
	for j, i := range missing {
		pending[j] = texts[i]
	}

	vectors, source, err := c.embed(ctx, pending)
	if err != nil {
		return nil, err
	}

	if source != backend && len(missing) < len(texts) {
		vectors, source, err = c.embed(ctx, texts)
		if err != nil {
			return nil, err
		}
		missing = missing[:0]
		for i := range texts {
			missing = append(missing, i)
		}
	}

	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	for j, i := range missing {
		out[i] = vectors[j]
		c.vectors[cacheKey(source, texts[i])] = vectors[j]
	}

	return out, nil
}

// Len returns the number of cached vectors.
func (c *Cached) Len() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.vectors)
}

func (c *Cached) serving() string {
	if s, ok := c.inner.(Switching); ok {
		return s.Serving()
	}
	return c.inner.Name()
}

func (c *Cached) embed(ctx context.Context, texts []string) ([][]float32, string, error) {
	if s, ok := c.inner.(Switching); ok {
		return s.EmbedFrom(ctx, texts)
	}
	vectors, err := c.inner.Embed(ctx, texts)
	return vectors, c.inner.Name(), err
}

func cacheKey(backend, text string) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(backend))
	h.Write([]byte{0})
	h.Write([]byte(text))

	var key [sha256.Size]byte
	h.Sum(key[:0])
	return key
}
