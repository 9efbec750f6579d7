// ABOUTME: Interactive therapy session REPL backed by the configured LLM
// ABOUTME: Auto-saves notes every 10 exchanges or 15 minutes, final notes on end
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindvault/internal/llm"
	"mindvault/internal/models"
	"mindvault/internal/vault"
)

const (
	autoSaveMessages = 10
	autoSaveInterval = 15 * time.Minute
)

var sessionApproach string

// NewSessionCmd creates the session command
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive therapy session",
		Long: `Start a conversation with the AI therapist. The therapist sees
your profile, recent journal entries, and notes from past sessions.

Messages can span multiple lines; finish one with "/send" on its own
line or Ctrl+D. Type /help inside the session for the full command
list. Ending the session stores the transcript and clinical notes in
the vault, encrypted like everything else.`,
		RunE: runSession,
	}

	cmd.Flags().StringVar(&sessionApproach, "approach", "", "Therapy approach (default: from config)")

	return cmd
}

// sessionState carries the mutable state of one running session.
type sessionState struct {
	vault     *vault.Vault
	therapist llm.Therapist
	approach  models.Approach

	profile models.Profile
	entries []models.JournalEntry
	notes   []models.Note

	transcript   []string
	currentNotes string
	messageCount int
	lastSave     time.Time
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	approach := cfg.DefaultApproach
	if sessionApproach != "" {
		var err error
		approach, err = models.ParseApproach(sessionApproach)
		if err != nil {
			names := make([]string, 0, len(models.Approaches()))
			for _, a := range models.Approaches() {
				names = append(names, a.String())
			}
			return fmt.Errorf("unknown approach %q (known: %s)", sessionApproach, strings.Join(names, ", "))
		}
	}

	therapist, err := llm.New(cfg)
	if err != nil {
		return err
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	state := &sessionState{
		vault:     v,
		therapist: therapist,
		approach:  approach,
		lastSave:  time.Now(),
	}
	if err := state.loadContext(); err != nil {
		return friendlyError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Starting %s therapy session", approach)))
	printSessionHelp(out)
	fmt.Fprintln(out, hintStyle.Render("Start typing to talk to the therapist."))

	return state.loop(cmd.Context(), out, bufio.NewReader(os.Stdin))
}

// loadContext refreshes the vault context the therapist sees.
func (s *sessionState) loadContext() error {
	var err error
	if s.profile, err = s.vault.Profile(); err != nil {
		return err
	}
	if s.entries, err = s.vault.Entries(nil, nil); err != nil {
		return err
	}
	if s.notes, err = s.vault.Notes(nil, nil); err != nil {
		return err
	}
	return nil
}

func (s *sessionState) loop(ctx context.Context, out io.Writer, in *bufio.Reader) error {
	for {
		message, command, eof := readMessage(out, in)

		if command != "" {
			switch strings.TrimPrefix(command, "/") {
			case "end", "exit", "quit":
				return s.finish(ctx, out)
			case "help":
				printSessionHelp(out)
			case "notes":
				if s.currentNotes == "" {
					if err := s.generateNotes(ctx, out); err != nil {
						fmt.Fprintln(out, errorStyle.Render(err.Error()))
						continue
					}
				}
				printNotes(out, "Current Session Notes", s.currentNotes)
			case "all_notes":
				s.printAllNotes(out)
			case "save":
				if err := s.saveNotes(ctx, out); err != nil {
					fmt.Fprintln(out, errorStyle.Render(err.Error()))
					continue
				}
				fmt.Fprintln(out, titleStyle.Render("Notes saved. Session continuing."))
				printNotes(out, "Current Session Notes", s.currentNotes)
			default:
				fmt.Fprintln(out, errorStyle.Render("Unknown command: "+command))
				printSessionHelp(out)
			}
			continue
		}

		if eof && message == "" {
			return s.finish(ctx, out)
		}
		if strings.TrimSpace(message) == "" {
			continue
		}

		s.transcript = append(s.transcript, "User: "+message)

		fmt.Fprintln(out, hintStyle.Render("Therapist is thinking..."))
		response, err := s.therapist.GenerateResponse(ctx, s.approach, s.profile, s.entries, s.notes, message)
		if err != nil {
			logger.Warn("response generation failed", zap.Error(err))
			fmt.Fprintln(out, errorStyle.Render("Error: "+err.Error()))
			// Keep the transcript consistent with what was answered
			s.transcript = s.transcript[:len(s.transcript)-1]
			continue
		}

		fmt.Fprintf(out, "\n%s %s\n", headerStyle.Render("Therapist:"), therapistStyle.Render(response))
		s.transcript = append(s.transcript, "Therapist: "+response)
		s.messageCount++

		if s.messageCount >= autoSaveMessages || time.Since(s.lastSave) >= autoSaveInterval {
			fmt.Fprintln(out, hintStyle.Render("Auto-saving session notes..."))
			if err := s.saveNotes(ctx, out); err != nil {
				fmt.Fprintln(out, errorStyle.Render(err.Error()))
			}
		}

		if eof {
			return s.finish(ctx, out)
		}
	}
}

// generateNotes produces interim clinical notes for the transcript so far.
func (s *sessionState) generateNotes(ctx context.Context, out io.Writer) error {
	fmt.Fprintln(out, hintStyle.Render("Generating therapy notes..."))
	notes, err := s.therapist.GenerateNotes(ctx, s.approach, s.profile, s.entries, s.notes,
		strings.Join(s.transcript, "\n"))
	if err != nil {
		return err
	}
	s.currentNotes = notes
	return nil
}

// saveNotes generates notes, stores them, and resets the auto-save clock.
func (s *sessionState) saveNotes(ctx context.Context, out io.Writer) error {
	if err := s.generateNotes(ctx, out); err != nil {
		return err
	}
	if _, err := s.vault.AddNote(s.currentNotes, time.Time{}); err != nil {
		return friendlyError(err)
	}
	// Saved notes become context for the rest of the session
	var err error
	if s.notes, err = s.vault.Notes(nil, nil); err != nil {
		return friendlyError(err)
	}
	s.messageCount = 0
	s.lastSave = time.Now()
	return nil
}

// finish writes final notes if anything happened since the last save,
// then stores the whole session.
func (s *sessionState) finish(ctx context.Context, out io.Writer) error {
	fmt.Fprintln(out, titleStyle.Render("Ending session..."))

	if len(s.transcript) == 0 {
		fmt.Fprintln(out, hintStyle.Render("Nothing was said; session not stored."))
		return nil
	}

	if s.messageCount > 0 || s.currentNotes == "" {
		if err := s.generateNotes(ctx, out); err != nil {
			logger.Warn("final notes generation failed", zap.Error(err))
			fmt.Fprintln(out, errorStyle.Render("Could not generate final notes: "+err.Error()))
		} else if _, err := s.vault.AddNote(s.currentNotes, time.Time{}); err != nil {
			return friendlyError(err)
		}
	}

	data := models.SessionData{
		Transcript: s.transcript,
		Notes:      s.currentNotes,
	}
	if _, err := s.vault.AddSession(s.approach, data, time.Time{}); err != nil {
		return friendlyError(err)
	}

	fmt.Fprintln(out, titleStyle.Render("Therapy session completed and notes saved."))
	if s.currentNotes != "" {
		printNotes(out, "Therapist Notes", s.currentNotes)
	}
	return nil
}

// printNotes displays a titled block of session notes.
func printNotes(out io.Writer, title, notes string) {
	fmt.Fprintln(out, titleStyle.Render(title+":"))
	fmt.Fprintln(out, notes)
}

func (s *sessionState) printAllNotes(out io.Writer) {
	if len(s.notes) == 0 {
		fmt.Fprintln(out, hintStyle.Render("No previous therapy notes available."))
		return
	}
	fmt.Fprintln(out, titleStyle.Render("Previous Therapy Notes:"))
	for i, note := range s.notes {
		if i >= 5 {
			break
		}
		fmt.Fprintln(out, headerStyle.Render(note.Timestamp.Format("Monday, January 2, 2006 at 3:04 PM")))
		fmt.Fprintln(out, note.Text)
		fmt.Fprintln(out, strings.Repeat("-", 50))
	}
}

// readMessage collects one multi-line message. A line starting with "/"
// (other than /send) is returned as a command immediately. The message
// ends at "/send" or EOF.
func readMessage(out io.Writer, in *bufio.Reader) (message, command string, eof bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("You:"))
	fmt.Fprintln(out, hintStyle.Render("(Type '/send' on a new line or press Ctrl+D when finished)"))

	var lines []string
	for {
		fmt.Fprint(out, "> ")
		line, err := in.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		if trimmed == "/send" {
			break
		}
		if strings.HasPrefix(trimmed, "/") && trimmed != "/" {
			return "", trimmed, false
		}
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			eof = true
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), "", eof
}

func printSessionHelp(out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("Available Commands:"))
	for _, row := range [][2]string{
		{"/help", "Show these commands"},
		{"/notes", "View therapist's notes for this session"},
		{"/all_notes", "View all previous therapist notes"},
		{"/save", "Save notes but continue the session"},
		{"/send", "Finish typing your message and send it"},
		{"/end", "End the session and save notes (also: exit, quit)"},
	} {
		fmt.Fprintf(out, "%s - %s\n", labelStyle.Render(row[0]), row[1])
	}
}
