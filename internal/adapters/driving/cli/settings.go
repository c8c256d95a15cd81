package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change page, grid, image and export settings.

Settings are stored in ~/.photoreport/config.toml. Flags such as --columns
on the export commands override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting by its dot-notation key, for example:

  photoreport settings set grid.columns 3
  photoreport settings set page.size letter
  photoreport settings set image.quality 70

The new value is rejected if the page could no longer fit a group header
and one row of photos.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through the page and grid settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	list, err := settingsService.List()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	heading(cmd, "Current Settings")
	section := ""
	for _, s := range list {
		if name, _, _ := strings.Cut(s.Key, "."); name != section {
			section = name
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}
		value := s.Value
		if value == "" {
			value = "(not set)"
		}
		line := fmt.Sprintf("  %-22s %s", s.Key, value)
		if !s.IsDefault() && s.Default != "" {
			line += muted(cmd, fmt.Sprintf("  (default %s)", s.Default))
		}
		cmd.Println(line)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	cmd.Printf("Reset %s to its default\n", args[0])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	heading(cmd, "Photo Report Settings Wizard")
	cmd.Println()
	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Page size
	cmd.Println("Step 1: Select Page Size")
	sizes := domain.AllPageSizes()
	defaultIdx := 1
	for i, size := range sizes {
		if size == current.Page.Size {
			defaultIdx = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, size)
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	size := sizes[parseChoice(readLine(reader), len(sizes), defaultIdx)-1]
	if err := settingsService.Set("page.size", string(size)); err != nil {
		return fmt.Errorf("failed to set page size: %w", err)
	}
	cmd.Printf("Set page size to: %s\n\n", size)

	// Step 2: Columns
	cmd.Println("Step 2: Photos Per Row")
	cmd.Printf("Enter columns (1-6) [%d]: ", current.Grid.Columns)
	columns := parseChoice(readLine(reader), 6, current.Grid.Columns)
	if err := settingsService.Set("grid.columns", strconv.Itoa(columns)); err != nil {
		return fmt.Errorf("failed to set columns: %w", err)
	}
	cmd.Printf("Set columns to: %d\n\n", columns)

	// Step 3: Default author
	cmd.Println("Step 3: Default Author")
	cmd.Printf("Enter author [%s]: ", current.Export.Author)
	if author := readLine(reader); author != "" {
		if err := settingsService.Set("export.author", author); err != nil {
			return fmt.Errorf("failed to set author: %w", err)
		}
		cmd.Printf("Set author to: %s\n", author)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
