// ABOUTME: Notes command for reviewing therapist notes
// ABOUTME: Notes are written by the session loop; this surface is read-only
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	notesLimit int
	notesFull  bool
)

// NewNotesCmd creates the notes command
func NewNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List therapist notes, newest first",
		Long: `List the clinical notes generated at the end of each therapy
session. Notes are encrypted like every other record.`,
		RunE: runNotes,
	}

	cmd.Flags().IntVar(&notesLimit, "limit", 10, "Maximum notes to show")
	cmd.Flags().BoolVar(&notesFull, "full", false, "Show full note text")

	return cmd
}

func runNotes(cmd *cobra.Command, args []string) error {
	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	notes, err := v.Notes(nil, nil)
	if err != nil {
		return friendlyError(err)
	}
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), hintStyle.Render("No therapist notes yet. Notes are written when a session ends."))
		return nil
	}
	if notesLimit > 0 && len(notes) > notesLimit {
		notes = notes[:notesLimit]
	}

	out := cmd.OutOrStdout()
	for _, n := range notes {
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("#%d  %s  (%s)", n.ID, n.Timestamp.Format("2006-01-02 15:04"), formatTime(n.Timestamp))))
		text := n.Text
		if !notesFull {
			text = truncate(strings.ReplaceAll(text, "\n", " "), 200)
		}
		fmt.Fprintln(out, text)
		fmt.Fprintln(out)
	}
	return nil
}
