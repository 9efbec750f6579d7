// ABOUTME: Condense command folding old journal months into summaries
// ABOUTME: Runs one month explicitly or sweeps every stale month
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	condenseMonth  string
	condenseMonths int
)

// NewCondenseCmd creates the condense command
func NewCondenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condense",
		Short: "Condense old journal months into summary entries",
		Long: `Condense replaces a month's journal entries with one summary
entry holding all of their text, newest first. The current and previous
month are never touched, so recent writing stays granular.

With --month, condenses exactly that month. Otherwise sweeps every
month that is at least two months old, covering up to --months back.`,
		RunE: runCondense,
	}

	cmd.Flags().StringVar(&condenseMonth, "month", "", "Condense one month (YYYY-MM)")
	cmd.Flags().IntVar(&condenseMonths, "months", 12, "How many stale months to sweep")

	return cmd
}

func runCondense(cmd *cobra.Command, args []string) error {
	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	out := cmd.OutOrStdout()

	if condenseMonth != "" {
		t, err := time.Parse("2006-01", condenseMonth)
		if err != nil {
			return fmt.Errorf("invalid month %q: use YYYY-MM", condenseMonth)
		}
		did, err := v.Condense(t.Month(), t.Year())
		if err != nil {
			return friendlyError(err)
		}
		if did {
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Condensed %s %d.", t.Month(), t.Year())))
		} else {
			fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("Nothing new to condense in %s %d.", t.Month(), t.Year())))
		}
		return nil
	}

	if condenseMonths <= 0 {
		return fmt.Errorf("--months must be positive, got %d", condenseMonths)
	}

	n, err := v.CondenseStale(time.Now(), condenseMonths)
	if err != nil {
		return friendlyError(err)
	}
	if n == 0 {
		fmt.Fprintln(out, hintStyle.Render("No stale months needed condensing."))
	} else {
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Condensed %d month(s).", n)))
	}
	return nil
}
