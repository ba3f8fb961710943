package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svcedit/svcedit/internal/platform"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List available backups",
	Long:  `List snapshots of the managed document, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		editor, err := platform.New(loadConfig())
		if err != nil {
			return err
		}

		entries, err := editor.Backups(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no backups")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTIMESTAMP\tSIZE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\n", e.Name, e.Timestamp.Format("2006-01-02 15:04:05"), e.Size)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}
