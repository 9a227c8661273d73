package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
)

var (
	scoreResumeFile string
	scoreJobFile    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description without rewriting it",
	Long:  `Print the job description keywords, the resume's score report and the rewrite plan the tailor command would send to the model.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to the resume text file (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to the job description file (required)")

	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()
	ctx := commandContext(cmd)

	resumeText, err := ingestion.ReadFile(scoreResumeFile, false)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}
	jobText, err := ingestion.ReadFile(scoreJobFile, false)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}

	engine, err := rt.engine(ctx, nil)
	if err != nil {
		return err
	}
	analysis, err := engine.Analyze(ctx, resumeText, jobText)
	if err != nil {
		return err
	}
	if pretty {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintKeywords(analysis.Keywords)
		printer.PrintScoreReport(analysis.Report)
		printer.PrintRewritePlan(analysis.Plan)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), analysis)
}
