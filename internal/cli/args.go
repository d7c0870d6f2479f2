package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

// RequireInputAndMaxColumns validates that exactly the <input_dir> and
// <max_columns> arguments are provided.
// Returns a helpful error message with usage and examples if any are missing.
func RequireInputAndMaxColumns(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &domainerrors.ArgumentError{
			Argument: "arguments",
			Value:    strings.Join(args, " "),
			Reason: fmt.Sprintf(`missing required arguments: <input_dir> <max_columns>

Usage: %s

Example:
  %s ./data 50`, cmd.UseLine(), cmd.CommandPath()),
		}
	}
	if len(args) > 2 {
		return &domainerrors.ArgumentError{
			Argument: "arguments",
			Value:    strings.Join(args, " "),
			Reason:   fmt.Sprintf("accepts 2 arg(s), received %d", len(args)),
		}
	}
	return nil
}
