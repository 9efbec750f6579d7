// ABOUTME: Journal commands for adding and listing encrypted entries
// ABOUTME: Entries are encrypted before storage and listed newest first
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mindvault/internal/models"
)

var (
	journalDate  string
	journalStart string
	journalEnd   string
	journalLimit int
	journalFull  bool
)

// NewJournalCmd creates the journal command group
func NewJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Add and review journal entries",
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry",
		Long: `Add a journal entry. With no argument, reads lines from stdin
until a line containing only "." or EOF.

Examples:
  mindvault journal add "Slept badly, worried about tomorrow's review"
  mindvault journal add --date 2024-06-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: runJournalAdd,
	}
	addCmd.Flags().StringVar(&journalDate, "date", "", "Entry date (YYYY-MM-DD or RFC 3339; default: now)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE:  runJournalList,
	}
	listCmd.Flags().StringVar(&journalStart, "start", "", "Lower date bound (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&journalEnd, "end", "", "Upper date bound (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&journalLimit, "limit", 20, "Maximum entries to show")
	listCmd.Flags().BoolVar(&journalFull, "full", false, "Show full entry text")

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		fmt.Fprintln(os.Stderr, hintStyle.Render(`Write your entry. End with a line containing only "."`))
		var err error
		text, err = readMultiline(bufio.NewReader(os.Stdin))
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("no text provided")
	}

	var ts time.Time
	if journalDate != "" {
		var err error
		ts, err = parseDate(journalDate)
		if err != nil {
			return err
		}
	}

	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	id, err := v.AddEntry(text, ts)
	if err != nil {
		return friendlyError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Entry #%d saved.", id)))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	var start, end *time.Time
	if journalStart != "" {
		t, err := parseDate(journalStart)
		if err != nil {
			return err
		}
		start = &t
	}
	if journalEnd != "" {
		t, err := parseDate(journalEnd)
		if err != nil {
			return err
		}
		// Bare dates bound the whole day
		t = t.Add(24*time.Hour - time.Microsecond)
		end = &t
	}

	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	entries, err := v.Entries(start, end)
	if err != nil {
		return friendlyError(err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), hintStyle.Render("No journal entries found."))
		return nil
	}
	if journalLimit > 0 && len(entries) > journalLimit {
		entries = entries[:journalLimit]
	}

	printEntries(cmd, entries)
	return nil
}

func printEntries(cmd *cobra.Command, entries []models.JournalEntry) {
	out := cmd.OutOrStdout()
	for _, e := range entries {
		header := fmt.Sprintf("#%d  %s  (%s)", e.ID, e.Timestamp.Format("2006-01-02 15:04"), formatTime(e.Timestamp))
		if e.Condensed {
			header += "  [condensed]"
		}
		fmt.Fprintln(out, headerStyle.Render(header))

		text := e.Text
		if !journalFull {
			text = truncate(strings.ReplaceAll(text, "\n", " "), 100)
		}
		fmt.Fprintln(out, text)
		fmt.Fprintln(out)
	}
}
