package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmail/barid"
	"github.com/s0up4200/tmail/config"
)

// skipInitAnnotation marks commands that run without config or client
const skipInitAnnotation = "tmail/skip-init"

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	version  = "dev"
	buildAt  = "unknown"
	emailArg string
	apiURL   string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tmail",
	Short: "A command line client for barid.site disposable inboxes",
	Long: `tmail reads and manages a barid.site disposable inbox from the terminal.

The inbox address is the only credential: anyone who knows it can read it.
Run "tmail domains" to see which domains the service accepts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build metadata injected at link time
func SetVersion(v, built string) {
	version = v
	buildAt = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&emailArg, "email", "e", "", "inbox address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "barid.site API URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInitAnnotation] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line flags take precedence over config and environment
	if cmd.Flags().Changed("email") {
		cfg.Email = emailArg
	}
	if cmd.Flags().Changed("api-url") {
		cfg.API.URL = apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// newClient creates the barid client for the configured inbox
func newClient() (*barid.Client, error) {
	if cfg.Email == "" {
		return nil, fmt.Errorf("no inbox address configured: use --email, TMAIL_EMAIL or 'email' in the config file")
	}

	client, err := barid.NewClient(cfg.Email,
		barid.WithBaseURL(cfg.API.URL),
		barid.WithTimeout(cfg.API.Timeout),
		barid.WithUserAgent(userAgent()),
		barid.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Debug().Str("email", client.Email()).Str("url", client.BaseURL()).Msg("Client ready")
	return client, nil
}

func userAgent() string {
	agent := cfg.API.UserAgent
	if agent == "" {
		agent = "tmail"
	}
	if !strings.Contains(agent, "/") {
		agent += "/" + version
	}
	return agent
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
