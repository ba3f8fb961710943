package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/svcedit/svcedit/pkg/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a YAML file",
	Long:  `Parse a YAML file and report syntax errors. Exits non-zero when the file is invalid.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read file", err)
		}

		res := validate.Check(string(data))
		if !res.Valid {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", res.Detail)
			os.Exit(1)
		}

		if res.Warning != "" {
			fmt.Printf("valid (%s)\n", res.Warning)
			return
		}
		fmt.Println("valid")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
