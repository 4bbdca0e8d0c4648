package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/ingestion"
	"github.com/spigell/skillscreen/internal/jdfields"
	"github.com/spigell/skillscreen/internal/roles"
)

type parsedJD struct {
	Name   string          `json:"name"`
	Fields jdfields.Fields `json:"fields"`
	Role   string          `json:"role"`
	Roles  []roles.Score   `json:"roles"`
}

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd FILE",
	Short: "Print the fields, skills and role scores of a job description",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s, err := newSession(ctx)
		if err != nil {
			log.Fatalf("starting %s: %s", app, err)
		}

		text, err := ingestion.ReadFile(args[0])
		if err != nil {
			s.logger.Fatal("reading job description", zap.Error(err))
		}

		jd, err := s.engine.PrepareJD(ctx, args[0], text)
		if err != nil {
			s.logger.Fatal("parsing job description", zap.Error(err))
		}

		scores, err := s.engine.Inferrer().Scores(ctx, text)
		if err != nil {
			s.logger.Fatal("scoring roles", zap.Error(err))
		}

		out, err := json.MarshalIndent(parsedJD{
			Name:   jd.Name,
			Fields: jd.Fields,
			Role:   jd.Role,
			Roles:  scores,
		}, "", "  ")
		if err != nil {
			s.logger.Fatal("encoding result", zap.Error(err))
		}

		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(parseJDCmd)
}
