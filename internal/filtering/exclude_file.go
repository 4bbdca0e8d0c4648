package filtering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/engine"
)

// ExcludedResumes is the content of an exclude file.
type ExcludedResumes struct {
	Items []*ExcludedResume
}

type ExcludedResume struct {
	Name       string
	Email      string
	JD         string
	ExcludedAt time.Time
}

// ToExcluded converts scored rows into exclude file entries.
func ToExcluded(rows []engine.Ranked, jd string) *ExcludedResumes {
	excluded := &ExcludedResumes{}
	for _, row := range rows {
		if row.Failed() {
			continue
		}
		excluded.Items = append(excluded.Items, &ExcludedResume{
			Name:       row.Name,
			Email:      row.Comparison.Email,
			JD:         jd,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// ReadExcludedFromFile loads an exclude file. A missing or empty file is an empty list.
func ReadExcludedFromFile(path string) (*ExcludedResumes, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedResumes{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedResumes{}, nil
	}

	var excluded ExcludedResumes
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedResumes) Append(s *ExcludedResumes) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedResumes) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Name)
	}
	return names
}

func (e *ExcludedResumes) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AppendToFile adds rows to the exclude file at path, creating it when needed.
func AppendToFile(path, jd string, rows []engine.Ranked) error {
	excluded, err := ReadExcludedFromFile(path)
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}
	excluded.Append(ToExcluded(rows, jd))
	return excluded.ToFile(path)
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes resumes listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, rows []engine.Ranked) ([]engine.Ranked, Step, error) {
	initial := len(rows)
	if f.path == "" {
		return rows, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	excluded, err := ReadExcludedFromFile(f.path)
	if err != nil {
		return rows, Step{}, fmt.Errorf("getting excluded resumes from file: %w", err)
	}

	names := make(map[string]struct{}, len(excluded.Items))
	for _, name := range excluded.Names() {
		names[name] = struct{}{}
	}

	left, removed := exclude(rows, func(row engine.Ranked) bool {
		_, ok := names[row.Name]
		return ok
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding resumes based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", len(left)),
		)
	}

	return left, stepOf(initial, removed, left), nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
