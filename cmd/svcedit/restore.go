package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svcedit/svcedit/internal/platform"
	"github.com/svcedit/svcedit/pkg/core"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [name]",
	Short: "Restore the document from a backup",
	Long: `Replace the live document with the content of the named snapshot.
The current content is backed up first, so a restore can itself be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor, err := platform.New(loadConfig())
		if err != nil {
			return err
		}

		out := editor.Restore(context.Background(), args[0])
		switch out.Status {
		case core.StatusSaved:
			fmt.Println(out.Message)
			return nil
		case core.StatusUnchanged:
			fmt.Println("backup content matches live document, nothing to do")
			return nil
		default:
			return out.Err
		}
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
