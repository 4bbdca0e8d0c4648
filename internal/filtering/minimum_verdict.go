package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/scoring"
)

type minimumVerdictFilter struct {
	enabled bool
	reason  string
	minimum scoring.Verdict
}

// NewMinimumVerdict creates a filter that removes resumes below a verdict.
func NewMinimumVerdict() Filter {
	return &minimumVerdictFilter{enabled: true}
}

func (f *minimumVerdictFilter) Name() string { return "minimum_verdict" }

func (f *minimumVerdictFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *minimumVerdictFilter) IsEnabled() bool { return f.enabled }

func (f *minimumVerdictFilter) Validate(cfg *Config) error {
	raw := strings.ToLower(strings.TrimSpace(cfg.MinimumVerdict))
	if raw == "" {
		f.Disable("no minimum verdict configured")
		return nil
	}

	v, err := scoring.ParseVerdict(raw)
	if err != nil {
		return fmt.Errorf("parsing minimum verdict: %w", err)
	}
	f.minimum = v
	return nil
}

func (f *minimumVerdictFilter) Apply(_ context.Context, deps Deps, rows []engine.Ranked) ([]engine.Ranked, Step, error) {
	initial := len(rows)

	left, removed := exclude(rows, func(row engine.Ranked) bool {
		return row.Comparison.Verdict < f.minimum
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding resumes below minimum verdict",
			zap.Stringer("minimum_verdict", f.minimum),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", len(left)),
		)
	}

	return left, stepOf(initial, removed, left), nil
}

func (f *minimumVerdictFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"minimum_verdict": f.minimum.String()},
	}
}
