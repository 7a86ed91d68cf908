/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docqa-be",
	Short: "Document question-answering backend",
	Long: `docqa-be indexes uploaded PDF documents for semantic retrieval and
answers natural-language questions about them through an OpenAI-compatible
completion endpoint.

Use "start" to run the HTTP server or "ingest" to rebuild the vector index
from the document directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}
