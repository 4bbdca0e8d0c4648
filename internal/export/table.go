package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/skills"
)

// WriteTable prints a ranking as an aligned terminal table.
func WriteTable(out io.Writer, ranking *engine.Ranking) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "JD: %s (%s, role: %s)\n", ranking.JD.Name, ranking.JD.Fields.ID, skills.Title(ranking.JD.Fields.RoleKey))
	fmt.Fprintf(tw, "Key skills: %s\n\n", strings.Join(ranking.JD.Fields.Skills, ", "))
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSCORE\tVERDICT\tCONFIDENCE\tSTRENGTHS\tGAPS")

	for _, r := range ranking.Results {
		if r.Failed() {
			fmt.Fprintf(tw, "-\t%s\t-\t%s\t-\t-\t-\n", r.Name, r.Error)
			continue
		}
		c := r.Comparison
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%.2f\t%s\t%s\n",
			r.Rank, r.Name, c.WeightedPercent, VerdictLabel(c.Verdict), c.Confidence,
			dash(display(c.Strengths)), dash(display(c.Gaps)),
		)
	}

	return tw.Flush()
}

// WriteEvidence prints the per-skill evidence of one comparison.
func WriteEvidence(out io.Writer, r engine.Ranked) error {
	if r.Failed() {
		_, err := fmt.Fprintf(out, "%s: %s\n", r.Name, r.Error)
		return err
	}

	c := r.Comparison
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s: %d%% %s, mobile: %s, email: %s\n",
		r.Name, c.WeightedPercent, VerdictLabel(c.Verdict), orNotFound(c.Mobile), orNotFound(c.Email))
	fmt.Fprintln(tw, "SKILL\tEVIDENCE\tSOURCE\tTRIGGER\tSIMILARITY\tSENTENCE")

	for _, match := range c.SkillMatches {
		ev := c.Evidence[match.Skill]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			skills.Title(match.Skill), TagLabel(ev.Tag), ev.Source, dash(ev.Trigger), match.Similarity, dash(ev.Sentence))
	}

	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
