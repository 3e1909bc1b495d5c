package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// addSettingsCommands adds commands for the settings stored with the journal.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Profile, notification and security settings",
		Long: `Settings are stored with the journal data and travel with exports.
Delivery channels (desktop, sound player) are configured in config.toml.`,
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsProfileCmd(app))
	cmd.AddCommand(newSettingsNotifyCmd(app))
	cmd.AddCommand(newSettingsSecurityCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			s := j.Settings()

			if output.IsJSON() {
				return output.JSON(s)
			}

			output.Bold("Profile")
			output.Printf("  Name:      %s\n", s.Profile.Name)
			if s.Profile.Photo != "" {
				output.Printf("  Photo:     %s\n", s.Profile.Photo)
			}
			output.Println()

			output.Bold("Notifications")
			table := NewTable(output, "Event", "Enabled", "Sound")
			for _, name := range channelNames {
				ch, _ := channelByName(&s.Notifications, name)
				sound := "off"
				if ch.SoundEnabled {
					sound = ch.SoundURL
				}
				table.AddRow(name, onOff(output, ch.Enabled), sound)
			}
			table.Render()
			output.Println()

			output.Bold("Security")
			output.Printf("  Biometric lock: %s\n", onOff(output, s.Security.BiometricEnabled))
			return nil
		},
	}
}

func newSettingsProfileCmd(app *App) *cobra.Command {
	var name, photo, header string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.updateSettings(cmd, func(s *models.Settings) error {
				if cmd.Flags().Changed("name") {
					if strings.TrimSpace(name) == "" {
						return errors.NewValidationError("name", name, "is required")
					}
					s.Profile.Name = name
				}
				if cmd.Flags().Changed("photo") {
					s.Profile.Photo = photo
				}
				if cmd.Flags().Changed("header") {
					s.Profile.HeaderImage = header
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&photo, "photo", "", "avatar path or URL")
	cmd.Flags().StringVar(&header, "header", "", "header image path or URL")

	return cmd
}

func newSettingsNotifyCmd(app *App) *cobra.Command {
	var (
		enabled  bool
		sound    bool
		soundURL string
	)

	cmd := &cobra.Command{
		Use:   "notify <" + strings.Join(channelNames, "|") + ">",
		Short: "Configure one notification event",
		Example: `  journal settings notify loss --enabled=false
  journal settings notify objective --sound-url https://example.com/fanfare.mp3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.updateSettings(cmd, func(s *models.Settings) error {
				ch, err := channelByName(&s.Notifications, args[0])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("enabled") {
					ch.Enabled = enabled
				}
				if cmd.Flags().Changed("sound") {
					ch.SoundEnabled = sound
				}
				if cmd.Flags().Changed("sound-url") {
					ch.SoundURL = soundURL
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "notify on this event")
	cmd.Flags().BoolVar(&sound, "sound", true, "play a sound")
	cmd.Flags().StringVar(&soundURL, "sound-url", "", "sound to play")

	return cmd
}

func newSettingsSecurityCmd(app *App) *cobra.Command {
	var biometric bool

	cmd := &cobra.Command{
		Use:   "security",
		Short: "Update security settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.updateSettings(cmd, func(s *models.Settings) error {
				if cmd.Flags().Changed("biometric") {
					s.Security.BiometricEnabled = biometric
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&biometric, "biometric", false, "lock the wallet view behind biometrics")

	return cmd
}

// updateSettings applies edit to a copy of the settings and saves it.
func (a *App) updateSettings(cmd *cobra.Command, edit func(*models.Settings) error) error {
	output := a.NewOutput(cmd)

	j, err := a.Journal(cmd.Context())
	if err != nil {
		return err
	}
	s := j.Settings()
	if err := edit(&s); err != nil {
		return err
	}
	j.UpdateSettings(cmd.Context(), s)

	if output.IsJSON() {
		return output.JSON(s)
	}
	output.Success("✓ Settings updated")
	return nil
}

// channelNames are the CLI names of the notification events, in display order.
var channelNames = []string{"win", "loss", "objective", "mantra"}

func channelByName(n *models.NotificationSettings, name string) (*models.NotificationChannel, error) {
	switch strings.ToLower(name) {
	case "win":
		return &n.WinTrade, nil
	case "loss":
		return &n.LossTrade, nil
	case "objective":
		return &n.ObjectiveReached, nil
	case "mantra":
		return &n.DailyMantra, nil
	}
	return nil, errors.NewValidationError("event", name, fmt.Sprintf("must be one of %s", strings.Join(channelNames, ", ")))
}

func onOff(output *Output, b bool) string {
	if b {
		return output.Green("on")
	}
	return output.Red("off")
}
