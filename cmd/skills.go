package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/ingestion"
	"github.com/spigell/skillscreen/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills FILE",
	Short: "List the dictionary skills found in a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			log.Fatalf("starting %s: %s", app, err)
		}

		text, err := ingestion.ReadFile(args[0])
		if err != nil {
			s.logger.Fatal("reading document", zap.Error(err))
		}

		var scope skills.SkillSet
		if role, _ := cmd.Flags().GetString("role"); role != "" {
			scope = s.engine.Extractor().ScopeForRole(role)
			if scope == nil {
				s.logger.Fatal("unknown role", zap.String("role", role))
			}
		}

		found, err := s.engine.Extractor().Extract(ctx, text, scope)
		if err != nil {
			s.logger.Fatal("extracting skills", zap.Error(err))
		}

		for _, skill := range found.Display() {
			fmt.Println(skill)
		}
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("role", "", "only look for the skills of this dictionary role")
}
