package skills

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/embedding"
)

const (
	DefaultFallbackThreshold = 0.85
	DefaultMinSkills         = 3
	DefaultRecoveryMinSkills = 5
	maxRecoveryWindow        = 3
)

// ExtractorConfig tunes the low-coverage stages of extraction.
type ExtractorConfig struct {
	// FallbackThreshold is the cosine similarity a sentence must exceed to add a skill semantically.
	FallbackThreshold float64
	// MinSkills triggers the semantic fallback when fewer skills were found literally.
	MinSkills int
	// RecoveryMinSkills triggers phrase recovery on resumes when fewer skills were found.
	RecoveryMinSkills int
}

// DefaultExtractorConfig returns the standard extraction thresholds.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		FallbackThreshold: DefaultFallbackThreshold,
		MinSkills:         DefaultMinSkills,
		RecoveryMinSkills: DefaultRecoveryMinSkills,
	}
}

// Extractor finds canonical skills mentioned in free text.
type Extractor struct {
	dict     *dictionary.Dictionary
	norm     *Normalizer
	embedder embedding.Embedder
	cfg      ExtractorConfig
	logger   *zap.Logger
}

// NewExtractor creates an Extractor. A nil embedder disables the semantic fallback.
func NewExtractor(d *dictionary.Dictionary, norm *Normalizer, embedder embedding.Embedder, cfg ExtractorConfig, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FallbackThreshold <= 0 {
		cfg.FallbackThreshold = DefaultFallbackThreshold
	}
	if cfg.MinSkills <= 0 {
		cfg.MinSkills = DefaultMinSkills
	}
	if cfg.RecoveryMinSkills <= 0 {
		cfg.RecoveryMinSkills = DefaultRecoveryMinSkills
	}
	return &Extractor{dict: d, norm: norm, embedder: embedder, cfg: cfg, logger: logger}
}

// Normalizer returns the normalizer used for canonical lookups.
func (e *Extractor) Normalizer() *Normalizer { return e.norm }

// Extract returns the canonical skills mentioned in text.
//
// Literal and synonym matches always run; the semantic fallback runs only when
// fewer than MinSkills skills were found. A nil or empty scope means the whole
// dictionary. The only error source is the embedding backend.
func (e *Extractor) Extract(ctx context.Context, text string, scope SkillSet) (SkillSet, error) {
	found := NewSkillSet()
	if strings.TrimSpace(text) == "" {
		return found, nil
	}

	candidates := e.scoped(scope)
	cleaned := Clean(text)
	tokens := Tokens(cleaned)

	e.matchLiteral(cleaned, tokens, candidates, found)
	e.expandSynonyms(cleaned, tokens, candidates, found)

	if found.Len() < e.cfg.MinSkills {
		recovered, err := e.semanticFallback(ctx, text, candidates, found)
		if err != nil {
			return nil, err
		}
		found.Union(recovered)
	}

	e.logger.Debug("skills extracted",
		zap.Int("scope", len(candidates)),
		zap.Strings("skills", found.Sorted()),
	)

	return found, nil
}

// ExtractResume is Extract followed by phrase recovery when a resume yields few skills.
func (e *Extractor) ExtractResume(ctx context.Context, text string, scope SkillSet) (SkillSet, error) {
	found, err := e.Extract(ctx, text, scope)
	if err != nil {
		return nil, err
	}

	if found.Len() < e.cfg.RecoveryMinSkills {
		found.Union(e.RecoverPhrases(text, e.scoped(scope)))
	}

	return found, nil
}

// ScopeForRole returns the skill vocabulary of role, or nil for an unknown role.
func (e *Extractor) ScopeForRole(role string) SkillSet {
	skills := e.dict.RoleSkills(role)
	if len(skills) == 0 {
		return nil
	}
	scope := NewSkillSet()
	for _, s := range skills {
		scope.Add(e.norm.Normalize(s))
	}
	return scope
}

func (e *Extractor) scoped(scope SkillSet) []string {
	if scope.Len() == 0 {
		return e.dict.Skills()
	}
	return scope.Sorted()
}

// matchLiteral tests every candidate skill name against the text.
func (e *Extractor) matchLiteral(cleaned string, tokens map[string]struct{}, candidates []string, found SkillSet) {
	for _, skill := range candidates {
		if present(cleaned, tokens, skill) {
			found.Add(e.norm.Normalize(skill))
		}
	}
}

// expandSynonyms adds a canonical skill when any of its variants is present.
func (e *Extractor) expandSynonyms(cleaned string, tokens map[string]struct{}, candidates []string, found SkillSet) {
	for _, canonical := range candidates {
		if found.Has(canonical) {
			continue
		}
		for _, variant := range e.dict.Variants(canonical) {
			if present(cleaned, tokens, variant) {
				found.Add(canonical)
				break
			}
		}
	}
}

// present checks a multi-word form by phrase containment and a single word by token membership.
func present(cleaned string, tokens map[string]struct{}, form string) bool {
	form = Clean(form)
	if form == "" {
		return false
	}
	if strings.Contains(form, " ") {
		return ContainsPhrase(cleaned, form)
	}
	_, ok := tokens[form]
	return ok
}

// semanticFallback embeds every line and every remaining candidate skill and keeps
// skills whose best line similarity exceeds the fallback threshold.
func (e *Extractor) semanticFallback(ctx context.Context, text string, candidates []string, found SkillSet) (SkillSet, error) {
	recovered := NewSkillSet()
	if e.embedder == nil {
		return recovered, nil
	}

	lines := Lines(text)
	pending := make([]string, 0, len(candidates))
	for _, skill := range candidates {
		if found.Has(skill) || e.dict.IsGeneric(skill) {
			continue
		}
		pending = append(pending, skill)
	}
	if len(lines) == 0 || len(pending) == 0 {
		return recovered, nil
	}

	vectors, err := e.embedder.Embed(ctx, append(append([]string(nil), lines...), pending...))
	if err != nil {
		return nil, fmt.Errorf("semantic skill fallback: %w", err)
	}
	lineVecs, skillVecs := vectors[:len(lines)], vectors[len(lines):]

	for i, skill := range pending {
		for _, lv := range lineVecs {
			if embedding.Cosine(skillVecs[i], lv) > e.cfg.FallbackThreshold {
				recovered.Add(skill)
				break
			}
		}
	}

	if recovered.Len() > 0 {
		e.logger.Debug("skills recovered semantically", zap.Strings("skills", recovered.Sorted()))
	}

	return recovered, nil
}

// RecoverPhrases compacts every short run of non-stop words and resolves it
// through the normalizer, catching spellings like "Node JS" or "Type Script".
func (e *Extractor) RecoverPhrases(text string, candidates []string) SkillSet {
	allowed := NewSkillSet(candidates...)
	recovered := NewSkillSet()

	for _, chunk := range phraseChunks(Clean(text)) {
		for size := 1; size <= maxRecoveryWindow; size++ {
			for start := 0; start+size <= len(chunk); start++ {
				window := chunk[start : start+size]
				var canonical string
				if size == 1 {
					canonical = e.norm.Normalize(window[0])
				} else {
					joined := strings.Join(window, "")
					if strings.ContainsAny(joined, "+#") {
						continue
					}
					canonical = e.norm.Normalize(joined)
				}
				if allowed.Has(canonical) {
					recovered.Add(canonical)
				}
			}
		}
	}

	return recovered
}

// phraseChunks splits cleaned text into runs of words separated by stop words and sentence ends.
func phraseChunks(cleaned string) [][]string {
	var chunks [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
		}
	}

	for _, word := range strings.Fields(cleaned) {
		endsSentence := strings.HasSuffix(word, ".")
		word = strings.TrimRight(word, ".")
		if word == "" || isStopWord(word) {
			flush()
			continue
		}
		current = append(current, word)
		if endsSentence {
			flush()
		}
	}
	flush()

	return chunks
}
