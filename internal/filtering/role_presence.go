package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/roles"
)

type rolePresenceFilter struct {
	enabled bool
	reason  string
	role    string
}

// NewRolePresence creates a filter that removes resumes never mentioning the job description's role.
func NewRolePresence() Filter {
	return &rolePresenceFilter{enabled: true}
}

func (f *rolePresenceFilter) Name() string { return "role_presence" }

func (f *rolePresenceFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *rolePresenceFilter) IsEnabled() bool { return f.enabled }

func (f *rolePresenceFilter) Validate(cfg *Config) error {
	if !cfg.RequireRole {
		f.Disable("not requested")
	}
	return nil
}

func (f *rolePresenceFilter) Apply(_ context.Context, deps Deps, rows []engine.Ranked) ([]engine.Ranked, Step, error) {
	initial := len(rows)

	f.role = roles.Unknown
	if deps.JD != nil {
		f.role = deps.JD.Fields.RoleKey
		if f.role == roles.Others {
			f.role = deps.JD.Role
		}
	}
	if deps.Dictionary == nil || f.role == roles.Unknown || f.role == roles.Others {
		if deps.Logger != nil {
			deps.Logger.Info("skipping role presence check", zap.String("reason", "job description role is unknown"))
		}
		return rows, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	left, removed := exclude(rows, func(row engine.Ranked) bool {
		return !roles.Mentions(deps.Dictionary, deps.Texts[row.Name], f.role)
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding resumes without the job description role",
			zap.String("role", f.role),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", len(left)),
		)
	}

	return left, stepOf(initial, removed, left), nil
}

func (f *rolePresenceFilter) Status() Status {
	details := map[string]string{}
	if f.role != "" {
		details["role"] = f.role
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
