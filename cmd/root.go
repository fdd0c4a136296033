/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ratingly",
	Short: "Backend for the ratingly review site",
	Long: `Backend for the ratingly review site.

Users register, log in, browse catalog items, and post star ratings,
text reviews, and threaded comments. Run "ratingly server" to start
the API, "ratingly migrate up" to apply the schema, and "ratingly seed"
to load demo data.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
