package arg

import (
	"fmt"
	"strings"
)

// HandleTitle returns the note argument at index i.
func HandleTitle(args []string, i int) (string, error) {
	if len(args) <= i || strings.TrimSpace(args[i]) == "" {
		return "", fmt.Errorf("error: No note title given. Try again")
	}
	return strings.TrimSpace(args[i]), nil
}
