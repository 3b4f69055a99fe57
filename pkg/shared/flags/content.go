package flags

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func AddContent(cmd *cobra.Command) {
	cmd.Flags().
		StringP("content", "c", "", "Note content. Reads the clipboard with --paste or piped stdin otherwise.")
}

// HandleContent resolves note content from --content, then --paste, then
// piped stdin. The second value is false when none of them supplied any.
func HandleContent(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("content") {
		content, err := cmd.Flags().GetString("content")
		return content, true, err
	}

	paste, err := HandlePaste(cmd)
	if err != nil {
		return "", false, err
	}
	if paste {
		content, err := readClipboard()
		if err != nil {
			return "", false, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return content, true, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", false, nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", false, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}
