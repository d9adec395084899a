package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/tandem-run/tandem/internal/config"
	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/profile"
	"github.com/tandem-run/tandem/internal/util"
)

var invalidNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and scaffold profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles and parts with their validation status",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's file, status, and config files",
	Long: `Show the file backing a profile or part, its validation status, and
the automation config files it selects. With --resolved, template
references are expanded and the effective TOML is printed instead of the
raw file.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileShow,
}

var profileNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a profile file from a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileNew,
}

var (
	profileShowResolved bool
	profileNewKind      string
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileNewCmd)

	profileShowCmd.Flags().BoolVar(&profileShowResolved, "resolved", false, "Print the template-resolved TOML instead of the raw file")
	profileNewCmd.Flags().StringVar(&profileNewKind, "kind", "profile", "What to scaffold: profile, emulator, or automation")
}

const listNameWidth = 28

func runProfileList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store := profile.NewStore(cfg.Paths.ResolveProfilesDir())
	out := cmd.OutOrStdout()

	stems, err := store.ListAll()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "Profiles in %s\n", store.Dir())
	fmt.Fprintln(out, strings.Repeat("─", 60))

	if len(stems) == 0 {
		fmt.Fprintln(out, "\nNo profiles found.")
		fmt.Fprintln(out, "Run 'tandem profile new <name>' to create one.")
		return nil
	}

	fmt.Fprintln(out)
	profiles, parts := 0, 0
	for _, stem := range stems {
		mark := okMark
		note := partBadge(stem)
		if note == "" {
			profiles++
		} else {
			parts++
		}

		name := stem
		entry, err := store.LoadEntry(stem)
		if err == nil {
			err = entry.Validate()
		}
		if err != nil {
			mark = failMark
			name = invalidNameStyle.Render(stem)
			note = strings.TrimSpace(note + " " + util.TruncateString(err.Error(), 60))
		}

		cell := util.TruncateANSI(name, listNameWidth)
		pad := listNameWidth - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(out, "  %s %s%s %s\n", mark, cell, strings.Repeat(" ", pad), note)
	}

	fmt.Fprintf(out, "\n%d profile(s), %d part(s)\n", profiles, parts)
	return nil
}

// partBadge returns the listing badge for a part stem, or "" for a full
// profile.
func partBadge(stem string) string {
	switch {
	case strings.HasSuffix(stem, "."+profile.EmulatorPart):
		return "[EMU]"
	case strings.HasSuffix(stem, "."+profile.AutomationPart):
		return "[AUTO]"
	}
	return ""
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store := profile.NewStore(cfg.Paths.ResolveProfilesDir())
	out := cmd.OutOrStdout()

	entry, err := store.LoadEntry(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Profile: %s\n", entry.Name)
	fmt.Fprintf(out, "File:    %s\n", entry.Path)
	if verr := entry.Validate(); verr != nil {
		fmt.Fprintf(out, "Status:  invalid (%v)\n", verr)
	} else {
		fmt.Fprintln(out, "Status:  valid")
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))

	if profileShowResolved {
		var doc any
		switch {
		case entry.Profile != nil:
			doc = entry.Profile
		case entry.Emulator != nil:
			doc = entry.Emulator
		case entry.Automation != nil:
			doc = entry.Automation
		}
		data, err := toml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to render profile '%s': %w", entry.Name, err)
		}
		fmt.Fprint(out, string(data))
	} else {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	}

	auto := entry.Automation
	if entry.Profile != nil {
		auto = entry.Profile.Automation
	}
	if auto == nil || auto.ConfigPath() == "" {
		return nil
	}

	var include, exclude []string
	if auto.Files != nil {
		include, exclude = auto.Files.Include, auto.Files.Exclude
	}
	files, err := util.FilterFiles(auto.ConfigPath(), include, exclude)
	if err != nil {
		fmt.Fprintf(out, "\nConfig files: unavailable (%v)\n", err)
		return nil
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "\nConfig files: none")
		return nil
	}
	fmt.Fprintf(out, "\nConfig files (%d):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  - %s\n", f)
	}
	return nil
}

func runProfileNew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	name := args[0]
	if name == "" || strings.ContainsAny(name, `/\`) {
		return errors.NewValidationError("profile name cannot be empty or contain path separators").
			WithField("name").
			WithValue(name)
	}

	stem := name
	var tmpl string
	switch profileNewKind {
	case "profile":
		tmpl = profileTemplate
	case "emulator":
		stem = name + "." + profile.EmulatorPart
		tmpl = emulatorTemplate
	case "automation":
		stem = name + "." + profile.AutomationPart
		tmpl = automationTemplate
	default:
		return fmt.Errorf("invalid --kind %q (expected profile, emulator, or automation)", profileNewKind)
	}

	dir := cfg.Paths.ResolveProfilesDir()
	path := filepath.Join(dir, stem+".toml")
	if _, err := os.Stat(path); err == nil {
		return errors.NewAlreadyExistsError("profile", stem)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tmpl), 0644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintln(out, "Edit it to point at your emulator instance and automation app.")
	return nil
}

const profileTemplate = `# A full profile: an emulator instance paired with an automation app.
# The emulator launches first; the automation app follows after waittime
# seconds. lifetime bounds a monitored run (tandem run up <name> --kill).

# lifetime = 3600
# waittime = 15

[emulator]
index = 0
# name = "main"

[automation]
path = "C:/path/to/automation"
app = "automation.exe"
# config_dir = "config"

# An [emulator] or [automation] table holding only
#   template = "<base>"
# is replaced by the standalone part <base>.emulator / <base>.automation.
`

const emulatorTemplate = `# A standalone emulator part, referenced from profiles as
#   [emulator]
#   template = "<this file's base name>"

index = 0
# name = "main"
`

const automationTemplate = `# A standalone automation part, referenced from profiles as
#   [automation]
#   template = "<this file's base name>"

path = "C:/path/to/automation"
app = "automation.exe"
# config_dir = "config"
`
