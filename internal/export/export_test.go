package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/skillscreen/internal/contact"
	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/jdfields"
	"github.com/spigell/skillscreen/internal/matching"
	"github.com/spigell/skillscreen/internal/scoring"
)

func sampleReport() *Report {
	cmp := &engine.Comparison{
		Resume:        "alice.pdf",
		JDSkills:      []string{"python", "sql"},
		MatchedSkills: []string{"python"},
		MissingSkills: []string{"sql"},
		Evidence: map[string]matching.Evidence{
			"python": {Skill: "python", Tag: matching.Strong, Source: matching.SourceExperience, Trigger: "python", Sentence: "Built services in Python"},
			"sql":    {Skill: "sql", Tag: matching.Absent, Source: matching.SourceNone},
		},
		Result: scoring.Result{
			WeightedScore:   1,
			TotalSkills:     2,
			WeightedPercent: 50,
			Verdict:         scoring.Partial,
			Strengths:       []string{"python"},
			Gaps:            []string{"sql"},
		},
		SkillMatches: []matching.SkillMatch{
			{Skill: "python", Matched: true, Similarity: 1, Threshold: 0.55, Trigger: "python", TriggerSkill: "python"},
			{Skill: "sql", Threshold: 0.55},
		},
		CrossMatched:       1,
		DocumentSimilarity: 0.4,
		Confidence:         4.8,
		Contact:            contact.Contact{Email: "alice@example.com"},
		ResumeRole:         "backend developer",
	}

	ranking := &engine.Ranking{
		RunID: "3f7c1f4e-0000-4000-8000-000000000000",
		JD: &engine.JobDescription{
			Name:   "backend.txt",
			Role:   "backend developer",
			Fields: jdfields.Fields{ID: "JD_1A2B3C", RoleKey: "backend developer", Skills: []string{"Python", "Sql"}},
		},
		Results: []engine.Ranked{
			{Rank: 1, Name: "alice.pdf", Comparison: cmp},
			{Name: "broken.docx", Err: errors.New("failed to parse docx"), Error: "failed to parse docx"},
		},
		StartedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	return &Report{
		Tool:        "skillscreen",
		Version:     "test",
		Dictionary:  "2026.10",
		Embedder:    "local",
		GeneratedAt: time.Date(2026, 10, 1, 12, 0, 1, 0, time.UTC),
		Rankings:    []*engine.Ranking{ranking},
	}
}

func TestReportMatchesSchema(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sampleReport())
	require.NoError(t, err)
	require.NoError(t, Validate(data))

	assert.Contains(t, string(data), `"verdict": "partial"`)
	assert.Contains(t, string(data), `"tag": "strong"`)
	assert.NotContains(t, string(data), "✅")
}

func TestValidateReportsViolations(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sampleReport())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	rows := doc["rankings"].([]any)[0].(map[string]any)["results"].([]any)
	rows[0].(map[string]any)["comparison"].(map[string]any)["weighted_percent"] = 140

	broken, err := json.Marshal(doc)
	require.NoError(t, err)

	err = Validate(broken)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, verr.Errors[0].Field, "weighted_percent")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	validation, err := WriteJSON(path, sampleReport())
	require.NoError(t, err)
	assert.NoError(t, validation)
	assert.FileExists(t, path)
}

func TestWriteExcel(t *testing.T) {
	t.Parallel()

	path, err := WriteExcel(filepath.Join(t.TempDir(), "report"), sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CandidatesSheet, EvidenceSheet}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Candidate", cell(CandidatesSheet, "C1"))
	assert.Equal(t, "alice.pdf", cell(CandidatesSheet, "C2"))
	assert.Equal(t, "50", cell(CandidatesSheet, "D2"))
	assert.Equal(t, "⚠️ Partial Match", cell(CandidatesSheet, "E2"))
	assert.Equal(t, NotFound, cell(CandidatesSheet, "I2"))
	assert.Equal(t, "alice@example.com", cell(CandidatesSheet, "J2"))
	assert.Equal(t, "broken.docx", cell(CandidatesSheet, "C3"))
	assert.Equal(t, "failed to parse docx", cell(CandidatesSheet, "K3"))

	assert.Equal(t, "Python", cell(EvidenceSheet, "C2"))
	assert.Equal(t, "🛠️ Strong Mention", cell(EvidenceSheet, "D2"))
	assert.Equal(t, "◾️ No Mention", cell(EvidenceSheet, "D3"))
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	report := sampleReport()
	require.NoError(t, WriteTable(&buf, report.Rankings[0]))

	out := buf.String()
	assert.Contains(t, out, "JD_1A2B3C")
	assert.Contains(t, out, "alice.pdf")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "⚠️ Partial Match")
	assert.Contains(t, out, "failed to parse docx")

	buf.Reset()
	require.NoError(t, WriteEvidence(&buf, report.Rankings[0].Results[0]))
	assert.Contains(t, buf.String(), "Built services in Python")
	assert.Contains(t, buf.String(), "mobile: Not found")
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "📌 Weak Mention", TagLabel(matching.Weak))
	assert.Equal(t, "✅ Good Match", VerdictLabel(scoring.Good))
	assert.Equal(t, "❌ Low Match", VerdictLabel(scoring.Low))
}
