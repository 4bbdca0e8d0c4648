package matching

import (
	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/skills"
)

// DepthClassifier tags each skill as strongly, weakly or not evidenced by a resume.
type DepthClassifier struct {
	dict    *dictionary.Dictionary
	verbs   []string
	openers []string
	closers []string
	logger  *zap.Logger
}

// NewDepthClassifier creates a classifier using the headers and action verbs of d.
func NewDepthClassifier(d *dictionary.Dictionary, logger *zap.Logger) *DepthClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepthClassifier{
		dict:    d,
		verbs:   cleanAll(d.ActionVerbs()),
		openers: cleanAll(d.ExperienceHeaders()),
		closers: cleanAll(d.ClosingHeaders()),
		logger:  logger,
	}
}

// Classify returns evidence for every skill in set.
//
// Experience sections are scanned sentence by sentence: a sentence naming the
// skill together with an action verb is Strong and ends the search, a sentence
// naming it alone is Weak. Without any experience hit, a mention anywhere in the
// resume is Weak. Otherwise the skill is Absent.
func (c *DepthClassifier) Classify(resumeText string, set skills.SkillSet) map[string]Evidence {
	result := make(map[string]Evidence, set.Len())
	if set.Len() == 0 {
		return result
	}

	sentences := c.experienceSentences(resumeText)
	wholeResume := skills.Clean(resumeText)

	for _, skill := range set.Sorted() {
		variants := c.variants(skill)
		ev := Evidence{Skill: skill, Tag: Absent, Source: SourceNone}

		for _, s := range sentences {
			variant, ok := firstPresent(s.cleaned, variants)
			if !ok {
				continue
			}
			if c.hasActionVerb(s.cleaned) {
				ev = Evidence{Skill: skill, Tag: Strong, Source: SourceExperience, Trigger: variant, Sentence: s.text}
				break
			}
			if ev.Tag == Absent {
				ev = Evidence{Skill: skill, Tag: Weak, Source: SourceExperience, Trigger: variant, Sentence: s.text}
			}
		}

		if ev.Tag == Absent {
			if variant, ok := firstPresent(wholeResume, variants); ok {
				ev = Evidence{Skill: skill, Tag: Weak, Source: SourceResume, Trigger: variant}
			}
		}

		result[skill] = ev
	}

	c.logger.Debug("depth classified", zap.Int("skills", len(result)), zap.Int("sentences", len(sentences)))

	return result
}

type sentence struct {
	text    string
	cleaned string
}

func (c *DepthClassifier) experienceSentences(resumeText string) []sentence {
	var out []sentence
	for _, section := range Sections(resumeText, c.openers, c.closers) {
		for _, s := range Sentences(section) {
			out = append(out, sentence{text: s, cleaned: skills.Clean(s)})
		}
	}
	return out
}

// variants returns the skill name followed by its configured synonyms.
func (c *DepthClassifier) variants(skill string) []string {
	return cleanAll(append([]string{skill}, c.dict.Variants(skill)...))
}

func (c *DepthClassifier) hasActionVerb(cleaned string) bool {
	for _, verb := range c.verbs {
		if skills.ContainsPhrase(cleaned, verb) {
			return true
		}
	}
	return false
}

func firstPresent(cleaned string, variants []string) (string, bool) {
	for _, v := range variants {
		if skills.ContainsPhrase(cleaned, v) {
			return v, true
		}
	}
	return "", false
}

func cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = skills.Clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
