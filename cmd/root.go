package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/rocketdigital/taskpilot/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging.
	verbose bool
	// outputFormat selects text, json or yaml output.
	outputFormat string
	// version is the application version, overridden at build time.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskpilot",
	Short: "taskpilot turns task descriptions into ClickUp tasks with AI suggestions",
	Long: `taskpilot sends a free-text task description to a generative AI model, which
proposes a title, a structured description, type, priority, estimate, assignees,
sprint, epic, status and tags. After review the task is created in ClickUp.

Run the HTTP API for the web form with "taskpilot serve", or use the
suggest, create and clickup commands directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand(cmd.CommandPath())
		logger.SetVersion(version)
		return setupLogging(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskpilot.yaml or $HOME/.taskpilot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// setupLogging installs the slog default logger. Logs go to stderr so
// stdout stays clean for --output json and for the MCP stdio transport.
func setupLogging(cmd *cobra.Command) error {
	level := viper.GetString("log.level")
	if verbose {
		level = "debug"
	}
	if level == "" {
		level = config.DefaultLogLevel
	}
	format := viper.GetString("log.format")
	if format == "" {
		format = config.DefaultLogFormat
	}
	l, err := logger.Setup(level, format, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	l.Debug("logging configured", slog.String("level", level), slog.String("config_file", viper.ConfigFileUsed()))
	return nil
}
