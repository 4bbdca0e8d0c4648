// Package engine compares job descriptions with resumes.
//
// An Engine is built once from a dictionary and an embedder and shared by every
// comparison. It holds no per-request state, so Compare and Rank are safe for
// concurrent use.
package engine

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/contact"
	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/embedding"
	"github.com/spigell/skillscreen/internal/jdfields"
	"github.com/spigell/skillscreen/internal/matching"
	"github.com/spigell/skillscreen/internal/roles"
	"github.com/spigell/skillscreen/internal/scoring"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	DefaultWorkers = 4
	// maxEmbeddedRunes caps the text sent to the embedder for document similarity.
	maxEmbeddedRunes = 8000
)

// Config tunes the matching pipeline. Zero values mean defaults.
type Config struct {
	Thresholds matching.Thresholds
	Extraction skills.ExtractorConfig
	Policy     scoring.Policy
	Workers    int
}

// DefaultConfig returns the standard thresholds and scoring policy.
func DefaultConfig() Config {
	return Config{
		Thresholds: matching.DefaultThresholds(),
		Extraction: skills.DefaultExtractorConfig(),
		Policy:     scoring.DefaultPolicy(),
		Workers:    DefaultWorkers,
	}
}

// Engine owns the immutable dictionary and the shared embedder.
type Engine struct {
	dict      *dictionary.Dictionary
	embedder  embedding.Embedder
	extractor *skills.Extractor
	cross     *matching.CrossMatcher
	depth     *matching.DepthClassifier
	inferrer  *roles.Inferrer
	jd        *jdfields.Parser
	policy    scoring.Policy
	workers   int
	logger    *zap.Logger
}

// New wires the pipeline. The dictionary and embedder are required.
func New(d *dictionary.Dictionary, embedder embedding.Embedder, cfg Config, logger *zap.Logger) (*Engine, error) {
	if d == nil {
		return nil, errors.New("dictionary is required")
	}
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Policy == (scoring.Policy{}) {
		cfg.Policy = scoring.DefaultPolicy()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	norm := skills.NewNormalizer(d)
	extractor := skills.NewExtractor(d, norm, embedder, cfg.Extraction, logger.Named("extractor"))

	return &Engine{
		dict:      d,
		embedder:  embedder,
		extractor: extractor,
		cross:     matching.NewCrossMatcher(d, extractor, embedder, cfg.Thresholds, logger.Named("cross")),
		depth:     matching.NewDepthClassifier(d, logger.Named("depth")),
		inferrer:  roles.NewInferrer(d, extractor),
		jd:        jdfields.NewParser(d, extractor, logger.Named("jd")),
		policy:    cfg.Policy,
		workers:   cfg.Workers,
		logger:    logger,
	}, nil
}

func (e *Engine) Dictionary() *dictionary.Dictionary { return e.dict }

func (e *Engine) Extractor() *skills.Extractor { return e.extractor }

func (e *Engine) Inferrer() *roles.Inferrer { return e.inferrer }

func (e *Engine) Policy() scoring.Policy { return e.policy }

// JobDescription is a job description prepared once and compared with many resumes.
type JobDescription struct {
	Name   string          `json:"name"`
	Text   string          `json:"-"`
	Fields jdfields.Fields `json:"fields"`
	// Role is the role inferred from skill overlap, or roles.Unknown.
	Role   string          `json:"role"`
	Skills skills.SkillSet `json:"-"`
}

// PrepareJD extracts the skills, fields and role of a job description and embeds its text.
func (e *Engine) PrepareJD(ctx context.Context, name, text string) (*JobDescription, error) {
	found, err := e.extractor.Extract(ctx, text, nil)
	if err != nil {
		return nil, unavailable(name, err)
	}

	role, err := e.inferrer.Infer(ctx, text)
	if err != nil {
		return nil, unavailable(name, err)
	}

	if _, err := e.embedDocuments(ctx, text); err != nil {
		return nil, unavailable(name, err)
	}

	jd := &JobDescription{
		Name:   name,
		Text:   text,
		Fields: e.jd.WithSkills(text, found),
		Role:   role,
		Skills: found,
	}

	e.logger.Debug("job description prepared",
		zap.String("jd", name),
		zap.String("jd_id", jd.Fields.ID),
		zap.String("role", role),
		zap.Strings("skills", found.Sorted()),
	)

	return jd, nil
}

// Comparison is the result of comparing one resume with one job description.
//
// Depth evidence decides the score, the verdict, the matched and missing lists,
// strengths and gaps. The similarity based cross match is carried per skill and
// summarized in Confidence on a 0..10 scale.
type Comparison struct {
	Resume        string                       `json:"resume"`
	JDSkills      []string                     `json:"jd_skills"`
	MatchedSkills []string                     `json:"matched_skills"`
	MissingSkills []string                     `json:"missing_skills"`
	Evidence      map[string]matching.Evidence `json:"evidence"`
	scoring.Result
	SkillMatches       []matching.SkillMatch `json:"skill_matches"`
	CrossMatched       int                   `json:"cross_matched"`
	DocumentSimilarity float64               `json:"document_similarity"`
	Confidence         float64               `json:"confidence"`
	contact.Contact
	ResumeRole string `json:"resume_role"`
}

// Compare prepares the job description and compares it with a single resume.
func (e *Engine) Compare(ctx context.Context, jdText, resumeText string) (*Comparison, error) {
	jd, err := e.PrepareJD(ctx, "", jdText)
	if err != nil {
		return nil, err
	}
	return e.CompareWith(ctx, jd, "", resumeText)
}

// CompareWith compares a prepared job description with one resume.
// Empty texts are valid and score zero. The only failure is an unavailable embedder.
func (e *Engine) CompareWith(ctx context.Context, jd *JobDescription, name, resumeText string) (*Comparison, error) {
	cross, err := e.cross.Match(ctx, jd.Skills, resumeText)
	if err != nil {
		return nil, unavailable(name, err)
	}

	similarity, err := e.documentSimilarity(ctx, jd.Text, resumeText)
	if err != nil {
		return nil, unavailable(name, err)
	}

	evidence := e.depth.Classify(resumeText, jd.Skills)
	result := e.policy.Score(jd.Skills, evidence)

	cmp := &Comparison{
		Resume:             name,
		JDSkills:           jd.Skills.Sorted(),
		MatchedSkills:      result.Strengths,
		MissingSkills:      result.Gaps,
		Evidence:           evidence,
		Result:             result,
		SkillMatches:       make([]matching.SkillMatch, 0, len(cross.Details)),
		CrossMatched:       cross.MatchedCount(),
		DocumentSimilarity: similarity,
		Contact:            contact.Extract(resumeText),
		ResumeRole:         roles.Detect(e.dict, resumeText),
	}
	for _, skill := range cmp.JDSkills {
		cmp.SkillMatches = append(cmp.SkillMatches, cross.Details[skill])
	}
	cmp.Confidence = Confidence(cmp.DocumentSimilarity, cmp.CrossMatched, result.TotalSkills)

	e.logger.Debug("resume compared",
		zap.String("resume", name),
		zap.Int("weighted_percent", result.WeightedPercent),
		zap.Stringer("verdict", result.Verdict),
		zap.Int("cross_matched", cmp.CrossMatched),
		zap.Float64("confidence", cmp.Confidence),
	)

	return cmp, nil
}

// Confidence blends document similarity and the cross matched share of skills
// into a 0..10 score rounded to two decimals.
func Confidence(similarity float64, matched, total int) float64 {
	total = max(1, total)
	score := similarity*10*0.2 + float64(matched)/float64(total)*10*0.8
	return math.Round(score*100) / 100
}

// documentSimilarity embeds both documents in one request so their vectors
// come from the same backend.
func (e *Engine) documentSimilarity(ctx context.Context, jdText, resumeText string) (float64, error) {
	vectors, err := e.embedDocuments(ctx, jdText, resumeText)
	if err != nil || len(vectors) < 2 {
		return 0, err
	}
	return embedding.Cosine(vectors[0], vectors[1]), nil
}

// embedDocuments embeds the leading part of each text. Nothing is embedded
// when any text is empty.
func (e *Engine) embedDocuments(ctx context.Context, texts ...string) ([][]float32, error) {
	trimmed := make([]string, len(texts))
	for i, text := range texts {
		if runes := []rune(text); len(runes) > maxEmbeddedRunes {
			text = string(runes[:maxEmbeddedRunes])
		}
		if text == "" {
			return nil, nil
		}
		trimmed[i] = text
	}
	return e.embedder.Embed(ctx, trimmed)
}
