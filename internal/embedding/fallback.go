package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/utils"
)

const (
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 5 * time.Second
)

// Fallback tries the primary embedder, retrying transient failures, then
// switches to the secondary embedder. When both fail the error wraps ErrUnavailable.
//
// The switch is permanent: once the secondary has served a request the primary
// is not asked again, so vectors of one run come from a single model.
type Fallback struct {
	primary    Embedder
	secondary  Embedder
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	switched atomic.Bool
}

// NewFallback chains primary and secondary. secondary may be nil.
func NewFallback(primary, secondary Embedder, maxRetries int, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Fallback{
		primary:    primary,
		secondary:  secondary,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}
}

func (f *Fallback) Name() string {
	if f.secondary == nil {
		return f.primary.Name()
	}
	return f.primary.Name() + "+" + f.secondary.Name()
}

// Serving returns the name of the backend the next request goes to.
func (f *Fallback) Serving() string {
	if f.switched.Load() {
		return f.secondary.Name()
	}
	return f.primary.Name()
}

func (f *Fallback) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, _, err := f.EmbedFrom(ctx, texts)
	return vectors, err
}

// EmbedFrom embeds texts and names the backend that produced the vectors.
func (f *Fallback) EmbedFrom(ctx context.Context, texts []string) ([][]float32, string, error) {
	if f.switched.Load() {
		vectors, err := f.secondary.Embed(ctx, texts)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", ErrUnavailable, f.secondary.Name(), err)
		}
		return vectors, f.secondary.Name(), nil
	}

	var primaryErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, utils.Backoff(f.retryDelay, attempt, maxRetryDelay)); err != nil {
				return nil, "", err
			}
		}

		vectors, err := f.primary.Embed(ctx, texts)
		if err == nil {
			return vectors, f.primary.Name(), nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, "", err
		}
		primaryErr = err

		f.logger.Debug("embedding attempt failed",
			zap.String("embedder", f.primary.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	if f.secondary == nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrUnavailable, f.primary.Name(), primaryErr)
	}

	vectors, err := f.secondary.Embed(ctx, texts)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v; %s: %v", ErrUnavailable, f.primary.Name(), primaryErr, f.secondary.Name(), err)
	}

	if f.switched.CompareAndSwap(false, true) {
		f.logger.Warn("switched to fallback embedder for the rest of the run",
			zap.String("primary", f.primary.Name()),
			zap.String("fallback", f.secondary.Name()),
			zap.Error(primaryErr),
		)
	}

	return vectors, f.secondary.Name(), nil
}
