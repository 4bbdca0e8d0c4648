// Package embedding turns text into vectors for semantic comparison.
//
// Every Embedder must be safe for concurrent use: a single instance is shared
// by all comparisons of a batch.
package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrUnavailable is returned when no embedding backend could serve a request.
var ErrUnavailable = errors.New("embedding backend unavailable")

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Name() string
}

// Switching is implemented by embedders that may serve requests from more than
// one backend. EmbedFrom names the backend that produced every vector of the
// batch and Serving names the backend the next request goes to.
type Switching interface {
	Embedder
	EmbedFrom(ctx context.Context, texts []string) ([][]float32, string, error)
	Serving() string
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Mismatched lengths or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}
