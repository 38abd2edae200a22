package cmd

import (
	"fmt"
	"log"
	"os"

	"cratefm/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cratefm",
	Short: "CrateFM is the admin write path of the media catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting CrateFM admin service...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
