// Package filtering narrows a ranking down after scoring.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/engine"
)

// Filter represents a single filtering step applied to ranked resumes.
// Filters only drop scored rows; error rows always pass through.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, rows []engine.Ranked) ([]engine.Ranked, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger     *zap.Logger
	Dictionary *dictionary.Dictionary
	JD         *engine.JobDescription
	// Texts maps resume names to their text.
	Texts map[string]string
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
	// Names lists the dropped resumes.
	Names []string
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	RequireRole    bool   `mapstructure:"require-role"`
	ExcludeFile    string `mapstructure:"exclude-file"`
	MinimumVerdict string `mapstructure:"minimum-verdict" validate:"omitempty,oneof=low partial good"`
	DedupeContacts bool   `mapstructure:"dedupe-contacts"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Defaults returns every filter in the order they run.
func Defaults() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewRolePresence(),
		NewMinimumVerdict(),
		NewDedupeContacts(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter, then applies them in order and renumbers the ranks.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, rows []engine.Ranked) ([]engine.Ranked, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		if len(info.Names) > 0 {
			deps.Logger.Debug("resumes dropped", zap.String("name", step.Name()), zap.Strings("resumes", info.Names))
		}

		rows = next
	}

	engine.Sort(rows)
	return rows, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// exclude drops every scored row for which drop returns true and reports the dropped names.
func exclude(rows []engine.Ranked, drop func(engine.Ranked) bool) ([]engine.Ranked, []string) {
	kept := make([]engine.Ranked, 0, len(rows))
	var dropped []string
	for _, row := range rows {
		if !row.Failed() && drop(row) {
			dropped = append(dropped, row.Name)
			continue
		}
		kept = append(kept, row)
	}
	return kept, dropped
}

func stepOf(initial int, dropped []string, left []engine.Ranked) Step {
	return Step{Initial: initial, Dropped: len(dropped), Left: len(left), Names: dropped}
}
