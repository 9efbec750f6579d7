// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Password prompt, vault opening, and display formatting
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"mindvault/internal/config"
	"mindvault/internal/crypto"
	"mindvault/internal/vault"
)

// promptPassword reads the vault password without echo. The
// MINDVAULT_PASSWORD environment variable bypasses the prompt for
// scripted use. Piped stdin falls back to a plain line read.
func promptPassword(prompt string) (string, error) {
	if pw := os.Getenv("MINDVAULT_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// loadConfig loads configuration for the current data directory,
// logging rather than failing on a malformed file.
func loadConfig() *config.Config {
	cfg, err := config.Load(dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, hintStyle.Render(err.Error()))
	}
	return cfg
}

// openVault prompts for the password and opens the vault. The caller
// owns the returned handle and must Close it.
func openVault(cfg *config.Config) (*vault.Vault, error) {
	password, err := promptPassword("Vault password: ")
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}
	return vault.Open(cfg.DBPath(), password, vault.WithLogger(logger))
}

// friendlyError rewrites the wrong-password decrypt error; anything
// else passes through.
func friendlyError(err error) error {
	if errors.Is(err, crypto.ErrDecrypt) {
		return fmt.Errorf("wrong password: the vault could not be decrypted")
	}
	return err
}

// readMultiline reads lines from r until a lone "." or EOF.
func readMultiline(r *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "." {
			break
		}
		if line != "" || err == nil {
			lines = append(lines, line)
		}
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
