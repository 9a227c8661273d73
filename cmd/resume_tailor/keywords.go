package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	keywordsJobFile string
	keywordsMax     int
	keywordsJobHTML bool
	keywordsJobURL  string
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the ranked keywords of a job description",
	RunE:  runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsJobFile, "job", "", "Path to the job description file")
	keywordsCmd.Flags().IntVarP(&keywordsMax, "max", "n", 0, "Maximum keywords (default MAX_KEYWORDS)")
	keywordsCmd.Flags().BoolVar(&keywordsJobHTML, "job-html", false, "Treat the job description as HTML")

	keywordsCmd.Flags().StringVar(&keywordsJobURL, "job-url", "", "Fetch the job description from a posting URL")
	keywordsCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	rootCmd.AddCommand(keywordsCmd)
}

type keywordsOutput struct {
	Keywords           []types.Keyword `json:"keywords"`
	JobDescriptionHash string          `json:"job_description_hash"`
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()
	ctx := commandContext(cmd)

	jobText, err := readJob(ctx, keywordsJobFile, keywordsJobURL, keywordsJobHTML)
	if err != nil {
		return err
	}

	engine, err := rt.engine(ctx, nil)
	if err != nil {
		return err
	}
	kws, err := engine.ExtractKeywords(ctx, jobText, keywordsMax)
	if err != nil {
		return err
	}
	if pretty {
		observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(kws)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), keywordsOutput{
		Keywords:           kws,
		JobDescriptionHash: tailoring.HashJobDescription(jobText),
	})
}
