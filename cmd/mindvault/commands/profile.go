// ABOUTME: Profile commands for viewing and editing the owner profile
// ABOUTME: The whole profile is re-encrypted on every change
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mindvault/internal/models"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
		Long: `View and edit the profile the AI therapist sees. Fields are
free text; leave a field empty to keep it unset.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE:  runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one profile field",
		Long: `Set one profile field. Known fields:

  ` + strings.Join(profileKeys(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: runProfileSet,
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Interactively fill in every profile field",
		RunE:  runProfileEdit,
	}

	cmd.AddCommand(showCmd, setCmd, editCmd)
	return cmd
}

func profileKeys() []string {
	keys := make([]string, 0, len(models.ProfileFields))
	for _, f := range models.ProfileFields {
		keys = append(keys, f.Key)
	}
	return keys
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	profile, err := v.Profile()
	if err != nil {
		return friendlyError(err)
	}
	if len(profile) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), hintStyle.Render("No profile stored yet. Run: mindvault profile edit"))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Profile"))
	for _, field := range models.ProfileFields {
		if value := profile[field.Key]; value != "" {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render(field.Label+":"), value)
		}
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	known := false
	for _, f := range models.ProfileFields {
		if f.Key == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown profile field %q (known: %s)", key, strings.Join(profileKeys(), ", "))
	}

	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	profile, err := v.Profile()
	if err != nil {
		return friendlyError(err)
	}
	if profile == nil {
		profile = models.Profile{}
	}
	profile[key] = value

	if err := v.SaveProfile(profile); err != nil {
		return friendlyError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Profile updated."))
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	v, err := openVault(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	profile, err := v.Profile()
	if err != nil {
		return friendlyError(err)
	}
	if profile == nil {
		profile = models.Profile{}
	}

	fmt.Fprintln(os.Stderr, hintStyle.Render("Press Enter to keep the current value; type - to clear a field."))
	reader := bufio.NewReader(os.Stdin)
	for _, field := range models.ProfileFields {
		current := profile[field.Key]
		if current != "" {
			fmt.Fprintf(os.Stderr, "%s [%s]: ", labelStyle.Render(field.Label), truncate(current, 40))
		} else {
			fmt.Fprintf(os.Stderr, "%s: ", labelStyle.Render(field.Label))
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			// keep
		case "-":
			delete(profile, field.Key)
		default:
			profile[field.Key] = line
		}
	}

	if err := v.SaveProfile(profile); err != nil {
		return friendlyError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Profile saved."))
	return nil
}
