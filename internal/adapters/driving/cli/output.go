package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/tui/styles"
)

var cliStyles = styles.DefaultStyles()

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// heading prints a section title, styled when writing to a terminal.
func heading(cmd *cobra.Command, title string) {
	if isTerminal(cmd.OutOrStdout()) {
		title = cliStyles.Title.Render(title)
	}
	cmd.Println(title)
}

// muted renders secondary text, styled when writing to a terminal.
func muted(cmd *cobra.Command, text string) string {
	if isTerminal(cmd.OutOrStdout()) {
		return cliStyles.Muted.Render(text)
	}
	return text
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
