package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const (
	LocalName              = "local"
	DefaultLocalDimensions = 512
)

// Local is an offline embedder built from hashed character trigrams and whole words.
// It is deterministic and needs no network, so it doubles as the fallback path.
type Local struct {
	dims int
}

// NewLocal creates a Local embedder with the given vector size.
func NewLocal(dims int) *Local {
	if dims <= 0 {
		dims = DefaultLocalDimensions
	}
	return &Local{dims: dims}
}

func (l *Local) Name() string { return LocalName }

func (l *Local) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = l.vector(text)
	}
	return out, nil
}

func (l *Local) vector(text string) []float32 {
	vec := make([]float32, l.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]{}\"'")
		if word == "" {
			continue
		}
		l.add(vec, "w:"+word, 1)

		padded := []rune("^" + word + "$")
		if len(padded) < 3 {
			continue
		}
		for i := 0; i+3 <= len(padded); i++ {
			l.add(vec, string(padded[i:i+3]), 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func (l *Local) add(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	vec[int(h.Sum32()%uint32(l.dims))] += weight
}
