package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/skillscreen/internal/scoring"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
	EvidenceSheet   = "Evidence"
)

var candidateHeaders = []string{
	"JD", "Rank", "Candidate", "Score %", "Verdict", "Confidence", "Strengths", "Gaps", "Mobile", "Email", "Error",
}

var evidenceHeaders = []string{
	"JD", "Candidate", "Skill", "Evidence", "Source", "Trigger", "Sentence", "Similarity", "Semantic Match",
}

var verdictFill = map[scoring.Verdict]string{
	scoring.Good:    "C6EFCE",
	scoring.Partial: "FFEB9C",
	scoring.Low:     "FFC7CE",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteExcel writes a workbook with a summary, the ranked candidates and the per-skill evidence.
func WriteExcel(outputPath string, report *Report) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", err
	}
	for _, sheet := range []string{CandidatesSheet, EvidenceSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
	}

	w := &workbook{f: f}
	if err := w.styles(); err != nil {
		return "", fmt.Errorf("creating styles: %w", err)
	}

	w.summary(report)
	w.candidates(report)
	w.evidence(report)
	if w.err != nil {
		return "", w.err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return outputPath, nil
}

// workbook keeps the first cell error so sheet builders stay linear.
type workbook struct {
	f   *excelize.File
	err error

	header int
	label  int
	wrap   int
	fills  map[scoring.Verdict]int
}

func (w *workbook) styles() error {
	var err error
	w.header, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	w.label, err = w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	w.wrap, err = w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	w.fills = make(map[scoring.Verdict]int, len(verdictFill))
	for verdict, color := range verdictFill {
		style, err := w.f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		w.fills[verdict] = style
	}
	return nil
}

func (w *workbook) set(sheet string, col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, cell, value)
}

func (w *workbook) style(sheet string, fromCol, toCol, row, style int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	w.err = w.f.SetCellStyle(sheet, from, to, style)
}

func (w *workbook) headers(sheet string, headers []string) {
	for i, h := range headers {
		w.set(sheet, i+1, 1, h)
	}
	w.style(sheet, 1, len(headers), 1, w.header)
	if w.err == nil {
		w.err = w.f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
}

func (w *workbook) summary(report *Report) {
	sheet := SummarySheet
	_ = w.f.SetColWidth(sheet, "A", "A", 28)
	_ = w.f.SetColWidth(sheet, "B", "B", 60)

	row := 1
	pair := func(label string, value any) {
		w.set(sheet, 1, row, label)
		w.style(sheet, 1, 1, row, w.label)
		w.set(sheet, 2, row, value)
		row++
	}

	w.set(sheet, 1, row, "Skill Screening Report")
	w.style(sheet, 1, 2, row, w.header)
	row += 2

	pair("Generated:", report.GeneratedAt.Format(time.DateTime))
	pair("Dictionary:", report.Dictionary)
	pair("Embedder:", report.Embedder)
	row++

	for _, ranking := range report.Rankings {
		counts := make(map[scoring.Verdict]int)
		for _, r := range ranking.Scored() {
			counts[r.Comparison.Verdict]++
		}

		pair("Job Description:", ranking.JD.Name)
		pair("JD ID:", ranking.JD.Fields.ID)
		pair("Role:", skills.Title(ranking.JD.Fields.RoleKey))
		pair("Key Skills:", strings.Join(ranking.JD.Fields.Skills, ", "))
		pair("Run ID:", ranking.RunID)
		pair("Candidates Scored:", len(ranking.Scored()))
		pair(VerdictLabel(scoring.Good)+":", counts[scoring.Good])
		pair(VerdictLabel(scoring.Partial)+":", counts[scoring.Partial])
		pair(VerdictLabel(scoring.Low)+":", counts[scoring.Low])
		pair("Failed:", len(ranking.Failed()))
		row++
	}
}

func (w *workbook) candidates(report *Report) {
	sheet := CandidatesSheet
	w.headers(sheet, candidateHeaders)
	_ = w.f.SetColWidth(sheet, "A", "C", 22)
	_ = w.f.SetColWidth(sheet, "G", "H", 40)
	_ = w.f.SetColWidth(sheet, "I", "K", 24)

	row := 2
	for _, ranking := range report.Rankings {
		for _, r := range ranking.Results {
			w.set(sheet, 1, row, ranking.JD.Name)
			w.set(sheet, 3, row, r.Name)
			if r.Failed() {
				w.set(sheet, 11, row, r.Error)
				row++
				continue
			}

			c := r.Comparison
			w.set(sheet, 2, row, r.Rank)
			w.set(sheet, 4, row, c.WeightedPercent)
			w.set(sheet, 5, row, VerdictLabel(c.Verdict))
			w.set(sheet, 6, row, c.Confidence)
			w.set(sheet, 7, row, display(c.Strengths))
			w.set(sheet, 8, row, display(c.Gaps))
			w.set(sheet, 9, row, orNotFound(c.Mobile))
			w.set(sheet, 10, row, orNotFound(c.Email))
			w.style(sheet, 1, len(candidateHeaders), row, w.fills[c.Verdict])
			row++
		}
	}

	if row > 2 && w.err == nil {
		w.err = w.f.AutoFilter(sheet, fmt.Sprintf("A1:K%d", row-1), []excelize.AutoFilterOptions{})
	}
}

func (w *workbook) evidence(report *Report) {
	sheet := EvidenceSheet
	w.headers(sheet, evidenceHeaders)
	_ = w.f.SetColWidth(sheet, "A", "F", 20)
	_ = w.f.SetColWidth(sheet, "G", "G", 70)

	row := 2
	for _, ranking := range report.Rankings {
		for _, r := range ranking.Scored() {
			c := r.Comparison
			for _, match := range c.SkillMatches {
				ev := c.Evidence[match.Skill]
				w.set(sheet, 1, row, ranking.JD.Name)
				w.set(sheet, 2, row, r.Name)
				w.set(sheet, 3, row, skills.Title(match.Skill))
				w.set(sheet, 4, row, TagLabel(ev.Tag))
				w.set(sheet, 5, row, ev.Source.String())
				w.set(sheet, 6, row, ev.Trigger)
				w.set(sheet, 7, row, ev.Sentence)
				w.set(sheet, 8, row, fmt.Sprintf("%.2f", match.Similarity))
				w.set(sheet, 9, row, match.Matched)
				w.style(sheet, 1, len(evidenceHeaders), row, w.wrap)
				row++
			}
		}
	}
}

func display(list []string) string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, skills.Title(s))
	}
	return strings.Join(out, ", ")
}
