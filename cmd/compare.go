package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/export"
	"github.com/spigell/skillscreen/internal/filtering"
	"github.com/spigell/skillscreen/internal/ingestion"
	"github.com/spigell/skillscreen/internal/utils"
)

const (
	PromptShowEvidence        = "Show evidence for a candidate"
	PromptExportExcel         = "Export to Excel"
	PromptReportToFile        = "Dump report to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"
	defaultExcelFile          = "skillscreen-report.xlsx"
	previewLength             = 80
)

var errExit = errors.New("exit requested")

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank resumes against one or more job descriptions",
	Run: func(cmd *cobra.Command, _ []string) {
		compare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSlice("jd", nil, "job description file (repeatable)")
	compareCmd.Flags().StringSliceP("resume", "r", nil, "resume file or directory (repeatable)")
	compareCmd.Flags().StringP("out", "o", "", "write the JSON report to this file")
	compareCmd.Flags().String("excel", "", "write an Excel workbook to this file")
	compareCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for further actions after ranking")
	compareCmd.Flags().StringP("exclude-file", "e", "", "special file with resumes to exclude. Default is unset.")
	compareCmd.Flags().String("minimum-verdict", "", "drop resumes below this verdict (low, partial, good)")
	compareCmd.Flags().Bool("require-role", false, "drop resumes that never mention the job description role")
	compareCmd.Flags().Bool("dedupe-contacts", false, "keep only the best resume per e-mail or mobile")

	_ = compareCmd.MarkFlagRequired("jd")
	_ = compareCmd.MarkFlagRequired("resume")

	viper.BindPFlag("filters.exclude-file", compareCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("filters.minimum-verdict", compareCmd.Flags().Lookup("minimum-verdict"))
	viper.BindPFlag("filters.require-role", compareCmd.Flags().Lookup("require-role"))
	viper.BindPFlag("filters.dedupe-contacts", compareCmd.Flags().Lookup("dedupe-contacts"))
}

// compare is the main command for the cli.
func compare(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx)
	if err != nil {
		log.Fatalf("starting %s: %s", app, err)
	}
	logger := s.logger

	logger.Info("starting the skillscreen", zap.String("version", binaryVersion()))
	logger.Debug("starting with config", zap.Any("config", s.config))

	jdPaths, _ := cmd.Flags().GetStringSlice("jd")
	resumeArgs, _ := cmd.Flags().GetStringSlice("resume")

	resumePaths, err := ingestion.Expand(resumeArgs)
	if err != nil {
		logger.Fatal("listing resumes", zap.Error(err))
	}
	if len(resumePaths) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	docs, texts := loadResumes(resumePaths, logger)

	if s.config.Batch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Batch.Timeout)
		defer cancel()
	}

	report := &export.Report{
		Tool:        app,
		Version:     binaryVersion(),
		Dictionary:  s.engine.Dictionary().Version(),
		Embedder:    s.embedder.Name(),
		GeneratedAt: time.Now().UTC(),
	}

	for _, path := range jdPaths {
		ranking, err := rankForJD(ctx, s, path, docs, texts)
		if err != nil {
			if ctx.Err() != nil {
				logger.Fatal("ranking interrupted", zap.Error(err))
			}
			logger.Error("skipping job description", zap.String("jd", path), zap.Error(err))
			continue
		}

		report.Rankings = append(report.Rankings, ranking)
		if err := export.WriteTable(os.Stdout, ranking); err != nil {
			logger.Fatal("printing ranking", zap.Error(err))
		}
		fmt.Println()
	}

	if len(report.Rankings) == 0 {
		logger.Info("exiting", zap.String("reason", "no job description could be ranked"))
		return
	}

	if err := writeOutputs(cmd, report, logger); err != nil {
		logger.Fatal("writing outputs", zap.Error(err))
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: promptItems(s.config),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, cmd, s, report); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func loadResumes(paths []string, logger *zap.Logger) ([]engine.Document, map[string]string) {
	loaded := ingestion.Load(paths)

	docs := make([]engine.Document, 0, len(loaded))
	texts := make(map[string]string, len(loaded))
	for _, doc := range loaded {
		if doc.Err != nil {
			logger.Warn("resume could not be read", zap.String("resume", doc.Path), zap.Error(doc.Err))
		} else {
			logger.Debug("resume loaded",
				zap.String("resume", doc.Path),
				zap.String("preview", utils.TruncateForLog(doc.Text, previewLength)),
			)
		}
		docs = append(docs, engine.Document{Name: doc.Name, Text: doc.Text, Err: doc.Err})
		texts[doc.Name] = doc.Text
	}

	logger.Info("resumes loaded", zap.Int("count", len(docs)))
	return docs, texts
}

func rankForJD(ctx context.Context, s *session, path string, docs []engine.Document, texts map[string]string) (*engine.Ranking, error) {
	text, err := ingestion.ReadFile(path)
	if err != nil {
		return nil, err
	}

	jd, err := s.engine.PrepareJD(ctx, path, text)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job description parsed",
		zap.String("jd", path),
		zap.String("jd_id", jd.Fields.ID),
		zap.String("role", jd.Fields.RoleKey),
		zap.Strings("skills", jd.Fields.Skills),
	)

	ranking, err := s.engine.Rank(ctx, jd, docs)
	if err != nil {
		return nil, err
	}

	steps := filtering.Defaults()
	deps := filtering.Deps{
		Logger:     s.logger,
		Dictionary: s.engine.Dictionary(),
		JD:         jd,
		Texts:      texts,
	}

	filtered, err := filtering.Run(ctx, &s.config.Filters, deps, steps, ranking.Results)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}
	ranking.Results = filtered

	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return ranking, nil
}

func writeOutputs(cmd *cobra.Command, report *export.Report, logger *zap.Logger) error {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		validation, err := export.WriteJSON(out, report)
		if err != nil {
			return err
		}
		if validation != nil {
			logger.Warn("report does not match its schema", zap.Error(validation))
		}
		logger.Info("report written", zap.String("filename", out))
	}

	if excel, _ := cmd.Flags().GetString("excel"); excel != "" {
		path, err := export.WriteExcel(excel, report)
		if err != nil {
			return err
		}
		logger.Info("workbook written", zap.String("filename", path))
	}

	return nil
}

func promptItems(config *Config) []string {
	items := []string{PromptShowEvidence, PromptExportExcel, PromptReportToFile}
	if config.Filters.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, cmd *cobra.Command, s *session, report *export.Report) error {
	logger := s.logger

	switch action {
	case PromptShowEvidence:
		return showEvidence(report)
	case PromptExportExcel:
		target, _ := cmd.Flags().GetString("excel")
		if target == "" {
			target = defaultExcelFile
		}
		path, err := export.WriteExcel(target, report)
		if err != nil {
			return fmt.Errorf("export to excel: %w", err)
		}
		logger.Info("workbook written", zap.String("filename", path))
		return nil
	case PromptReportToFile:
		filename, err := export.DumpToTmpFile(report)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(s, report)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showEvidence(report *export.Report) error {
	for {
		items := make([]string, 0)
		rows := make(map[string]engine.Ranked)

		for _, ranking := range report.Rankings {
			for _, r := range ranking.Results {
				label := fmt.Sprintf("%s / #%d %s", ranking.JD.Name, r.Rank, r.Name)
				if r.Failed() {
					label = fmt.Sprintf("%s / failed %s", ranking.JD.Name, r.Name)
				}
				items = append(items, label)
				rows[label] = r
			}
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		if err := export.WriteEvidence(os.Stdout, rows[selected]); err != nil {
			return err
		}
		fmt.Println()
	}
}

func appendToExcludeFile(s *session, report *export.Report) error {
	path := strings.TrimSpace(s.config.Filters.ExcludeFile)

	for _, ranking := range report.Rankings {
		if err := filtering.AppendToFile(path, ranking.JD.Name, ranking.Scored()); err != nil {
			return err
		}
		ranking.Results = ranking.Failed()
	}

	s.logger.Info("appended to exclude file", zap.String("filename", path))
	return nil
}
