// Package main provides the resume_tailor command line and API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume_tailor"

var (
	cfgFile string
	pretty  bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Resume Tailor rewrites resumes toward a job description's keywords",
		Long:          "Resume Tailor extracts ranked keywords from a job description, scores a resume against them and asks a language model for a rewrite that lands every keyword inside its target density window.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "print human-readable summaries instead of JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
