package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/scrub/internal/config"
	"github.com/tessro/scrub/internal/timeline"
)

var configInitInteractive bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing scrub configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, including defaults and SCRUB_* overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show the configuration file path",
	Annotations: map[string]string{optionalConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Initialize configuration",
	Long:        `Create a new configuration file with default values, or pick them with --interactive.`,
	Annotations: map[string]string{optionalConfig: "true"},
	RunE:        runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  playback.tick_interval  Tick period in milliseconds (default 100)
  playback.loop_duration  Seconds for one pass of the day at 1X (default 100)
  playback.step           Step size in positions (default 5)
  playback.speed          Starting speed: 1, 2, 4 or 8
  playback.drag_policy    resume or pause
  timeline.date_change    keep, start or end
  timeline.zoom           24h or 1h
  timeline.segments       Path to a segments file
  tui.theme               auto, dark or light
  tui.channel             Channel shown at startup
  log.level               debug, info, warn or error
  log.file                Log file path

Examples:
  scrub config set playback.drag_policy pause
  scrub config set timeline.zoom 1h`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitInteractive, "interactive", "i", false, "choose settings with a form")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	}
	return config.Encode(cmd.OutOrStdout(), cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'scrub config init' first", configPath)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	newCfg := config.Default()
	if configInitInteractive {
		if err := runConfigForm(newCfg); err != nil {
			return err
		}
	}
	if err := newCfg.Validate(); err != nil {
		return err
	}

	if err := config.Write(configPath, newCfg); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Point timeline.segments at a segments file, or use the sample day")
	fmt.Fprintln(out, "  2. Run 'scrub ui' to open the playback dashboard")
	return nil
}

// runConfigForm asks for the settings people change most often.
func runConfigForm(c *config.Config) error {
	speed := strconv.Itoa(c.Playback.Speed)
	var speedOptions []huh.Option[string]
	for _, s := range timeline.Speeds {
		speedOptions = append(speedOptions, huh.NewOption(s.String(), strconv.Itoa(int(s))))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Starting speed").
				Options(speedOptions...).
				Value(&speed),
			huh.NewSelect[string]().
				Title("While dragging the playhead").
				Description("What happens to autoplay during a scrub").
				Options(
					huh.NewOption("Keep playing from the new position", "resume"),
					huh.NewOption("Pause", "pause"),
				).
				Value(&c.Playback.DragPolicy),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("When the date changes").
				Options(
					huh.NewOption("Keep the time of day", "keep"),
					huh.NewOption("Go to 00:00:00", "start"),
					huh.NewOption("Go to 24:00:00", "end"),
				).
				Value(&c.Timeline.DateChange),
			huh.NewSelect[string]().
				Title("Ruler zoom").
				Options(
					huh.NewOption("24 hours", "24h"),
					huh.NewOption("1 hour around the playhead", "1h"),
				).
				Value(&c.Timeline.Zoom),
			huh.NewInput().
				Title("Segments file").
				Description("Leave empty for the sample day").
				Value(&c.Timeline.Segments),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Match terminal", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&c.TUI.Theme),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	n, err := strconv.Atoi(speed)
	if err != nil {
		return fmt.Errorf("invalid speed %q", speed)
	}
	c.Playback.Speed = n
	c.Timeline.Segments = strings.TrimSpace(c.Timeline.Segments)
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	if err := config.Set(getConfigPath(), key, value); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}
