package flags

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// readClipboard is swapped out in tests.
var readClipboard = clipboard.ReadAll

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().
		Bool("paste", false, "Use the clipboard contents as note content.")
}

func HandlePaste(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("paste")
}
