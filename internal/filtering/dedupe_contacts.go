package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/engine"
)

type dedupeContactsFilter struct {
	enabled bool
	reason  string
}

// NewDedupeContacts creates a filter that keeps only the best ranked resume per e-mail or mobile.
func NewDedupeContacts() Filter {
	return &dedupeContactsFilter{enabled: true}
}

func (f *dedupeContactsFilter) Name() string { return "dedupe_contacts" }

func (f *dedupeContactsFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *dedupeContactsFilter) IsEnabled() bool { return f.enabled }

func (f *dedupeContactsFilter) Validate(cfg *Config) error {
	if !cfg.DedupeContacts {
		f.Disable("not requested")
	}
	return nil
}

// Apply expects rows in rank order, so the first occurrence of a contact is the best one.
func (f *dedupeContactsFilter) Apply(_ context.Context, deps Deps, rows []engine.Ranked) ([]engine.Ranked, Step, error) {
	initial := len(rows)
	engine.Sort(rows)

	seen := make(map[string]struct{})
	left, removed := exclude(rows, func(row engine.Ranked) bool {
		keys := contactKeys(row)
		duplicate := false
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				duplicate = true
			}
		}
		for _, key := range keys {
			seen[key] = struct{}{}
		}
		return duplicate
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding resumes with duplicate contacts",
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", len(left)),
		)
	}

	return left, stepOf(initial, removed, left), nil
}

func contactKeys(row engine.Ranked) []string {
	var keys []string
	if email := strings.ToLower(strings.TrimSpace(row.Comparison.Email)); email != "" {
		keys = append(keys, "email:"+email)
	}
	// masked numbers are not unique
	if mobile := strings.TrimSpace(row.Comparison.Mobile); mobile != "" && !strings.Contains(mobile, "X") {
		keys = append(keys, "mobile:"+mobile)
	}
	return keys
}

func (f *dedupeContactsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
