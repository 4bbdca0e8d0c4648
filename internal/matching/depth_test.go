package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skillscreen/internal/skills"
)

func TestClassifyActionVerbsMakeStrongEvidence(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)
	resume := "Built REST APIs using Python and developed SQL-backed services, led the backend team."

	got := c.Classify(resume, skills.NewSkillSet("python", "rest api", "sql"))
	require.Len(t, got, 3)

	for _, skill := range []string{"python", "rest api", "sql"} {
		ev := got[skill]
		assert.Equal(t, Strong, ev.Tag, skill)
		assert.Equal(t, SourceExperience, ev.Source, skill)
		assert.Equal(t, resume[:len(resume)-1], ev.Sentence, skill)
	}
	assert.Equal(t, "rest api", got["rest api"].Trigger)
}

func TestClassifySkillsListOnlyIsWeak(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)
	resume := `Jane Doe
Experience
Developed dashboards for the operations team.
Worked with Docker every day.
Skills
Familiar with Kubernetes`

	got := c.Classify(resume, skills.NewSkillSet("kubernetes", "docker"))

	assert.Equal(t, Weak, got["kubernetes"].Tag)
	assert.Equal(t, SourceResume, got["kubernetes"].Source)
	assert.Empty(t, got["kubernetes"].Sentence)

	assert.Equal(t, Weak, got["docker"].Tag)
	assert.Equal(t, SourceExperience, got["docker"].Source)
	assert.Equal(t, "Worked with Docker every day", got["docker"].Sentence)
}

func TestClassifyLaterStrongSentenceWins(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)
	resume := `Work Experience
Used Python for small scripts.
Projects
Automated nightly reports in Python.`

	got := c.Classify(resume, skills.NewSkillSet("python"))

	assert.Equal(t, Strong, got["python"].Tag)
	assert.Equal(t, "Automated nightly reports in Python", got["python"].Sentence)
}

func TestClassifyUsesSynonymVariants(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)

	got := c.Classify("Deployed services to K8s clusters.", skills.NewSkillSet("kubernetes"))

	assert.Equal(t, Strong, got["kubernetes"].Tag)
	assert.Equal(t, "k8s", got["kubernetes"].Trigger)
}

func TestClassifyAbsent(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)

	got := c.Classify("Managed a bakery and trained new staff.", skills.NewSkillSet("python", "sql"))

	for _, skill := range []string{"python", "sql"} {
		assert.Equal(t, Absent, got[skill].Tag)
		assert.Equal(t, SourceNone, got[skill].Source)
	}
}

func TestClassifyDoesNotConfuseSpecialSkills(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)

	got := c.Classify("Experience with C++ and C#", skills.NewSkillSet("c++", "c"))

	assert.NotEqual(t, Absent, got["c++"].Tag)
	assert.Equal(t, Absent, got["c"].Tag)
}

func TestClassifySingleLetterSkillIgnoresPlurals(t *testing.T) {
	t.Parallel()

	c := NewDepthClassifier(testDictionary(t), nil)

	got := c.Classify("Experience\nHolds a CS degree and built reports in R.", skills.NewSkillSet("c", "r"))

	assert.Equal(t, Absent, got["c"].Tag)
	assert.Equal(t, Strong, got["r"].Tag)
}

func TestSections(t *testing.T) {
	t.Parallel()

	openers := []string{"experience", "projects"}
	closers := []string{"skills", "tools"}

	t.Run("no headers returns whole text", func(t *testing.T) {
		text := "Just a paragraph about Go."
		assert.Equal(t, []string{text}, Sections(text, openers, closers))
	})

	t.Run("closer ends the section", func(t *testing.T) {
		text := "Experience\nBuilt things\nSkills\nGo, SQL\nProjects\nShipped a CLI"
		assert.Equal(t, []string{"Experience\nBuilt things", "Projects\nShipped a CLI"}, Sections(text, openers, closers))
	})

	t.Run("long line led by an opener is a header", func(t *testing.T) {
		text := "Summary\nBackend engineer\nProfessional Experience at Acme Corp, 2019-2023\nBuilt billing APIs"
		openers := []string{"professional experience", "experience"}
		assert.Equal(t,
			[]string{"Professional Experience at Acme Corp, 2019-2023\nBuilt billing APIs"},
			Sections(text, openers, []string{"summary"}),
		)
	})

	t.Run("long line led by a closer stays in the section", func(t *testing.T) {
		text := "Experience\nTools: Docker, Git, Terraform, Ansible and Jenkins\nMaintained pipelines"
		sections := Sections(text, openers, closers)
		require.Len(t, sections, 1)
		assert.Contains(t, sections[0], "Maintained pipelines")
	})

	t.Run("long sentence is not a header", func(t *testing.T) {
		text := "Experience\nDeveloped internal tools for the data platform team\nMaintained pipelines"
		sections := Sections(text, openers, closers)
		require.Len(t, sections, 1)
		assert.Contains(t, sections[0], "Maintained pipelines")
	})
}

func TestSentences(t *testing.T) {
	t.Parallel()

	got := Sentences("Built a Node.js API. Led a team!\nShipped v2.0 on time")
	assert.Equal(t, []string{"Built a Node.js API", "Led a team", "Shipped v2.0 on time"}, got)
}

func TestTagText(t *testing.T) {
	t.Parallel()

	for _, tag := range []Tag{Absent, Weak, Strong} {
		text, err := tag.MarshalText()
		require.NoError(t, err)

		var back Tag
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, tag, back)
	}

	var bad Tag
	assert.Error(t, bad.UnmarshalText([]byte("excellent")))
}
