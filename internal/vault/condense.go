// ABOUTME: Condenser: folds one calendar month of journal entries into a summary
// ABOUTME: Insert-and-delete run in a single transaction; re-runs are no-ops
package vault

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// monthRange returns the first instant of the month and its last
// instant (one microsecond before the next month), both UTC.
func monthRange(month time.Month, year int) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Microsecond)
	return start, end
}

// Condense replaces the given calendar month's journal entries with one
// summary entry. It reports whether a summary was created.
//
// The month's rows are fetched newest-first (the canonical condensation
// order) and folded into a deterministic summary text. If the month has
// no rows, or only already-condensed rows, nothing happens; a prior
// summary is only folded again when new entries have arrived since, so
// a month converges back to exactly one record. The summary insert and
// the original deletions are one transaction: a crash between them can
// neither duplicate nor lose entries.
func (v *Vault) Condense(month time.Month, year int) (bool, error) {
	start, end := monthRange(month, year)

	entries, err := v.entries.List(&start, &end)
	if err != nil {
		return false, fmt.Errorf("listing %s %d: %w", month, year, err)
	}
	if len(entries) == 0 {
		return false, nil
	}

	fresh := 0
	for _, entry := range entries {
		if !entry.Condensed {
			fresh++
		}
	}
	if fresh == 0 {
		return false, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Condensed journal entries for %s:\n\n", start.Format("January 2006"))
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		fmt.Fprintf(&b, "Date: %s\n%s\n\n", entry.Timestamp.UTC().Format(time.RFC3339), entry.Text)
		ids = append(ids, entry.ID)
	}

	if err := v.entries.ReplaceWithSummary(b.String(), start, ids); err != nil {
		return false, fmt.Errorf("condensing %s %d: %w", month, year, err)
	}

	v.logger.Info("condensed journal entries",
		zap.String("month", start.Format("2006-01")),
		zap.Int("folded", len(entries)))
	return true, nil
}

// CondenseStale condenses every eligible month: months strictly before
// the previous full month relative to now, walking back the given
// number of months. It returns how many summaries were created. The
// scheduling policy (how far back to walk, how often to run) belongs to
// the caller.
func (v *Vault) CondenseStale(now time.Time, months int) (int, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)

	condensed := 0
	for i := 0; i < months; i++ {
		target := first.AddDate(0, -i, 0)
		created, err := v.Condense(target.Month(), target.Year())
		if err != nil {
			return condensed, err
		}
		if created {
			condensed++
		}
	}
	return condensed, nil
}
