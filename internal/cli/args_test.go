package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

func TestRequireInputAndMaxColumns(t *testing.T) {
	cmd := &cobra.Command{
		Use: "csvbreaker <input_dir> <max_columns>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireInputAndMaxColumns(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required arguments: <input_dir> <max_columns>") {
			t.Errorf("expected error to name the missing arguments, got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("returns error when one arg", func(t *testing.T) {
		err := RequireInputAndMaxColumns(cmd, []string{"./data"})
		var argErr *domainerrors.ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("expected ArgumentError, got: %v", err)
		}
	})

	t.Run("returns nil when both args provided", func(t *testing.T) {
		err := RequireInputAndMaxColumns(cmd, []string{"./data", "3"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireInputAndMaxColumns(cmd, []string{"a", "2", "c"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 2 arg(s), received 3") {
			t.Errorf("expected error to contain 'accepts 2 arg(s), received 3', got: %s", err.Error())
		}
	})
}
