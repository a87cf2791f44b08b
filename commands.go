package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/harrisonrobin/daybrief/pkg/advice"
	"github.com/harrisonrobin/daybrief/pkg/auth"
	"github.com/harrisonrobin/daybrief/pkg/brief"
	"github.com/harrisonrobin/daybrief/pkg/config"
	"github.com/harrisonrobin/daybrief/pkg/google"
	"github.com/harrisonrobin/daybrief/pkg/orgmode"
	"github.com/harrisonrobin/daybrief/pkg/taskwarrior"
	"github.com/harrisonrobin/daybrief/pkg/telegram"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build today's digest and send it",
	RunE:  runSend,
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize read access to Google Calendar",
	Long: `Runs the Google OAuth flow and caches the token in ~/.config/daybrief.
Place the OAuth client file from the Google Cloud console at
~/.config/daybrief/credentials.json first.`,
	RunE: runAuth,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the daybrief config file",
}

var setCalendarCmd = &cobra.Command{
	Use:   "set-calendar NAME",
	Short: "Set the Google Calendar whose events are merged into the digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		cfg.Calendar = args[0]
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Printf("Default calendar set to: %s\n", args[0])
		return nil
	},
}

func addSendFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("data-dir", config.DefaultDataDir, "Directory containing the routine JSON files")
	f.String("timezone", "Asia/Dhaka", "IANA timezone that decides what \"today\" is")
	f.String("name", config.DefaultName, "Name used in the greeting")
	f.String("calendar", "", "Google Calendar name to merge events from (overrides config)")
	f.Bool("taskwarrior", false, "Merge pending Taskwarrior tasks with a due date into deadlines")
	f.StringSlice("org", nil, "Org-mode files whose TODO deadlines are merged into deadlines")
	f.Bool("dry-run", false, "Print the digest without sending it")
}

func bindSendFlags(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		config.KeyDataDir:     "data-dir",
		config.KeyTimezone:    "timezone",
		config.KeyName:        "name",
		config.KeyCalendar:    "calendar",
		config.KeyTaskwarrior: "taskwarrior",
		config.KeyOrgFiles:    "org",
		config.KeyDryRun:      "dry-run",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	if err := bindSendFlags(cmd); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	// Credentials are checked before any client is built or request made.
	if err := brief.Validate(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()

	var advisor *advice.Advisor
	if cfg.Gemini.APIKey == "" {
		advisor = advice.NewAdvisor(nil, cfg.Gemini.Timeout, logger)
	} else {
		gen, err := advice.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
		if err != nil {
			advisor = advice.NewBrokenAdvisor(err, logger)
		} else {
			advisor = advice.NewAdvisor(gen, cfg.Gemini.Timeout, logger)
		}
	}

	sender := telegram.NewClient(cfg.Telegram.BotToken, &http.Client{Timeout: cfg.Telegram.Timeout}).
		WithBaseURL(cfg.Telegram.BaseURL)

	runner := brief.NewRunner(cfg, sender, advisor, os.Stdout, logger)

	if cfg.Calendar != "" {
		cal, err := google.NewClient(ctx, cfg.Calendar, logger)
		if err != nil {
			logger.Warn("calendar events disabled", zap.String("calendar", cfg.Calendar), zap.Error(err))
		} else {
			runner.Events = cal
		}
	}
	if cfg.Taskwarrior.Enabled {
		runner.Deadlines = append(runner.Deadlines, taskwarrior.NewClient(cfg.Taskwarrior.Filter))
	}
	if len(cfg.OrgFiles) > 0 {
		runner.Deadlines = append(runner.Deadlines, orgmode.NewSource(cfg.OrgFiles))
	}

	_, err = runner.Run(ctx)
	return err
}

func runAuth(cmd *cobra.Command, args []string) error {
	if err := auth.RemoveToken(); err != nil {
		return fmt.Errorf("could not delete existing token, please delete it manually: %w", err)
	}
	if _, err := auth.GetClient(cmd.Context(), auth.Scopes, true, logger); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Println("Authentication successful!")
	return nil
}
