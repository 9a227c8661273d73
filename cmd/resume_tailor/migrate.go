package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if _, err := rt.database(commandContext(cmd)); err != nil {
		return err
	}

	rt.log.Info("schema applied")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
	return err
}
