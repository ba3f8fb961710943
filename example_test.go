package svcedit_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/svcedit/svcedit"
)

// Example demonstrates the save pipeline end to end: the first save
// changes the seeded document, the second is a duplicate no-op.
func Example() {
	dir, err := os.MkdirTemp("", "svcedit-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	editor, err := svcedit.New(svcedit.Config{
		DocumentPath: filepath.Join(dir, "services.yaml"),
		BackupDir:    filepath.Join(dir, "backups"),
		AutoInit:     true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	fmt.Println(editor.Save(ctx, "a: 1\n").Status)
	fmt.Println(editor.Save(ctx, "a: 1\n").Status)
	fmt.Println(editor.Save(ctx, "a: [\n").Status)

	// Output:
	// saved
	// unchanged
	// rejected
}
