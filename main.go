package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrisonrobin/daybrief/pkg/brief"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "daybrief",
	Short: "Send today's class, study and deadline digest to Telegram",
	Long: `daybrief reads your class routine, self-learning plan, deadlines and special
events from JSON files, adds a short piece of Gemini advice and a productivity
tip, and sends the result to you through a Telegram bot.

Required environment:
  TELEGRAM_BOT_TOKEN   bot token from @BotFather
  TELEGRAM_USER_ID     chat id the digest is sent to
Optional:
  GEMINI_API_KEY       enables AI advice`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSend,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(sendCmd, authCmd, configCmd)
	configCmd.AddCommand(setCalendarCmd)

	// The digest flags live on both the root and send so `daybrief` alone sends.
	for _, cmd := range []*cobra.Command{rootCmd, sendCmd} {
		addSendFlags(cmd)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, brief.ErrMissingCredentials) {
			fmt.Fprintf(os.Stderr, "Error: %v as environment variables.\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
