// internal/cli/root.go

// Package cli defines the cobra command surface for the mcp-groq client.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Jenish-Vue/MCP-Groq/internal/appconfig"
	"github.com/Jenish-Vue/MCP-Groq/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "mcp-groq <server-script> [server-script...]",
	Short: "mcp-groq — interactive Groq chat client backed by MCP tool servers",
	Long: `mcp-groq launches one or more MCP tool-server scripts (.py or .js),
aggregates the tools they expose, and runs an interactive query loop where
the Groq model can call those tools to answer you.`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; the environment still wins when both are set.
		_ = godotenv.Load()

		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range []string{"model", "baseURL", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		for _, name := range []string{"maxToolRounds", "mcpInitTimeout", "timeout"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.Itoa(viper.GetInt(name)))
			}
		}
		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults). This gives other packages a stable snapshot.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		if cfg.Debug {
			pp.Println(cfg)
		}

		return nil
	},
	RunE: runClient,
}

// Execute runs the root command and flushes the log file on exit.
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("model", "", "Groq model id for chat completions")
	rootCmd.PersistentFlags().String("baseURL", "", "OpenAI-compatible completion endpoint base URL")
	rootCmd.PersistentFlags().Int("maxToolRounds", 0, "maximum tool-dispatch rounds per query")
	rootCmd.PersistentFlags().Int("mcpInitTimeout", 0, "seconds to wait for a tool server to initialize")
	rootCmd.PersistentFlags().Int("timeout", 0, "seconds to wait for a chat completion")
	rootCmd.PersistentFlags().String("logFile", "", "request log file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("baseURL", rootCmd.PersistentFlags().Lookup("baseURL"))
	_ = viper.BindPFlag("maxToolRounds", rootCmd.PersistentFlags().Lookup("maxToolRounds"))
	_ = viper.BindPFlag("mcpInitTimeout", rootCmd.PersistentFlags().Lookup("mcpInitTimeout"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file and sets safe defaults. A missing
// file is fine; defaults and flags carry the run.
func ensureConfigLoaded() error {
	viper.SetDefault("model", appconfig.DefaultModel)
	viper.SetDefault("baseURL", appconfig.DefaultBaseURL)
	viper.SetDefault("maxToolRounds", appconfig.DefaultMaxToolRounds)
	viper.SetDefault("mcpInitTimeout", appconfig.DefaultMCPInitTimeout)
	viper.SetDefault("timeout", appconfig.DefaultTimeoutSeconds)
	viper.SetDefault("logFile", appconfig.DefaultLogFile)
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// getConfig returns the loaded application configuration for other packages.
func getConfig() *appconfig.Config {
	return currentConfig
}
