package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

var (
	tailorResumeFile string
	tailorResumeID   string
	tailorJobFile    string
	tailorJobHTML    bool
	tailorJobURL     string
	tailorOutFile    string
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to a job description",
	Long: `Rewrite a resume so every ranked keyword of the job description lands inside
its density window. The result is validated against the tailored resume
schema and written as JSON. On failure the structured failure is written
instead and the command exits non-zero.`,
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().StringVarP(&tailorResumeFile, "resume", "r", "", "Path to the resume text file")
	tailorCmd.Flags().StringVar(&tailorResumeID, "resume-id", "", "ID of a stored resume (requires DATABASE_URL)")
	tailorCmd.Flags().StringVar(&tailorJobFile, "job", "", "Path to the job description file")
	tailorCmd.Flags().BoolVar(&tailorJobHTML, "job-html", false, "Treat the job description as HTML")
	tailorCmd.Flags().StringVarP(&tailorOutFile, "out", "o", "", "Output file (default stdout)")

	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "Fetch the job description from a posting URL")
	tailorCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	if tailorResumeFile == "" && tailorResumeID == "" {
		return errors.New("one of --resume or --resume-id is required")
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()
	ctx := commandContext(cmd)

	jobText, err := readJob(ctx, tailorJobFile, tailorJobURL, tailorJobHTML)
	if err != nil {
		return err
	}

	database, err := rt.database(ctx)
	if err != nil {
		return err
	}

	req := tailoring.Request{JobDescription: jobText}
	if tailorResumeFile != "" {
		req.Resume, err = ingestion.ReadFile(tailorResumeFile, false)
		if err != nil {
			return fmt.Errorf("reading resume: %w", err)
		}
	}
	if tailorResumeID != "" {
		if database == nil {
			return errors.New("--resume-id requires DATABASE_URL")
		}
		resume, err := database.GetResume(ctx, tailorResumeID)
		if err != nil {
			return err
		}
		if resume == nil {
			return fmt.Errorf("resume not found: %s", tailorResumeID)
		}
		req.ResumeID = resume.ID
		if req.Resume == "" {
			req.Resume = resume.Content
		}
	}

	var store tailoring.Store
	if database != nil {
		store = database
	}
	engine, err := rt.engine(ctx, store)
	if err != nil {
		return err
	}

	tailored, err := engine.Tailor(ctx, req)
	if err != nil {
		var failure *tailoring.Failure
		if errors.As(err, &failure) {
			if werr := writeJSON(cmd.OutOrStdout(), failure); werr != nil {
				return werr
			}
			return fmt.Errorf("tailoring failed: %s", failure.Code)
		}
		return err
	}

	data, err := json.MarshalIndent(tailored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tailored resume: %w", err)
	}
	if err := schemas.ValidateTailoredResume(data); err != nil {
		return fmt.Errorf("tailored resume failed schema validation: %w", err)
	}

	rt.log.Info("tailored resume ready",
		zap.String("tailored_id", tailored.ID),
		zap.Int("attempts", tailored.Attempts),
		zap.Bool("met_target", tailored.MetTarget),
	)
	if pretty {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintTailored(tailored)
		if tailorOutFile == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tailored.Text)
			return err
		}
	}
	return writeOutput(cmd.OutOrStdout(), tailorOutFile, data)
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutput writes data to path, or to w when path is empty
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
