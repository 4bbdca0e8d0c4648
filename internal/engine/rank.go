package engine

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skillscreen/internal/logger"
)

// Document is a resume handed to Rank. Err marks a resume that could not be read.
type Document struct {
	Name string
	Text string
	Err  error
}

// Ranked is one row of a ranking. Failed resumes keep Rank 0 and carry Err.
type Ranked struct {
	Rank       int         `json:"rank"`
	Name       string      `json:"name"`
	Comparison *Comparison `json:"comparison,omitempty"`
	Error      string      `json:"error,omitempty"`
	Err        error       `json:"-"`
}

// Failed reports whether the row is an error row.
func (r Ranked) Failed() bool { return r.Err != nil }

// Ranking is the outcome of comparing many resumes with one job description.
type Ranking struct {
	RunID     string          `json:"run_id"`
	JD        *JobDescription `json:"jd"`
	Results   []Ranked        `json:"results"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
}

// Scored returns the successful rows.
func (r *Ranking) Scored() []Ranked {
	out := make([]Ranked, 0, len(r.Results))
	for _, row := range r.Results {
		if !row.Failed() {
			out = append(out, row)
		}
	}
	return out
}

// Failed returns the error rows.
func (r *Ranking) Failed() []Ranked {
	out := make([]Ranked, 0)
	for _, row := range r.Results {
		if row.Failed() {
			out = append(out, row)
		}
	}
	return out
}

// Rank compares every document with jd on a bounded pool of workers.
//
// A document that fails to read or score becomes an error row and never stops
// its siblings. Rows are sorted by weighted percent, then confidence, then name,
// and error rows come last. Rank only fails when ctx is done before all rows are in.
func (e *Engine) Rank(ctx context.Context, jd *JobDescription, docs []Document) (*Ranking, error) {
	if jd == nil {
		return nil, errors.New("job description is required")
	}

	ranking := &Ranking{
		RunID:     uuid.NewString(),
		JD:        jd,
		Results:   make([]Ranked, len(docs)),
		StartedAt: time.Now().UTC(),
	}
	log := logger.WithFields(e.logger, logger.RunFields(ranking.RunID, jd.Name)...)
	log.Info("ranking resumes", zap.Int("resumes", len(docs)), zap.Int("workers", e.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, doc := range docs {
		g.Go(func() error {
			row := Ranked{Name: doc.Name, Err: doc.Err}
			if row.Err == nil {
				row.Comparison, row.Err = e.CompareWith(gctx, jd, doc.Name, doc.Text)
			}
			if row.Err != nil {
				row.Error = row.Err.Error()
				log.Warn("resume skipped", zap.String(logger.FieldResume, doc.Name), zap.Error(row.Err))
			}
			ranking.Results[i] = row
			return nil
		})
	}

	// workers never return errors, failures live in the rows
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	Sort(ranking.Results)
	ranking.Duration = time.Since(ranking.StartedAt)

	log.Info("ranking finished",
		zap.Int("scored", len(ranking.Scored())),
		zap.Int("failed", len(ranking.Failed())),
		zap.Duration("duration", ranking.Duration),
	)

	return ranking, nil
}

// Sort orders rows best first and renumbers the successful ones from 1.
func Sort(rows []Ranked) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if !a.Failed() {
			if a.Comparison.WeightedPercent != b.Comparison.WeightedPercent {
				return a.Comparison.WeightedPercent > b.Comparison.WeightedPercent
			}
			if a.Comparison.Confidence != b.Comparison.Confidence {
				return a.Comparison.Confidence > b.Comparison.Confidence
			}
		}
		return a.Name < b.Name
	})

	rank := 0
	for i := range rows {
		rows[i].Rank = 0
		if !rows[i].Failed() {
			rank++
			rows[i].Rank = rank
		}
	}
}
