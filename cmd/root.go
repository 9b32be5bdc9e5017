package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/headless"
	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/provider"
	"github.com/radworks/radchat/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "radchat",
	Short: "Radiology department chat assistant",
	Long: `Chat assistant for radiology workflows: finds the right phone
number for a reading room or procedure team and looks up ACR
Appropriateness Criteria for imaging questions.

Runs the interactive chat screen by default; use --headless with
--prompt for one-shot scripted use, or 'radchat serve' to run the
backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		model := viper.GetString("model")
		if model == "" {
			model = provider.DefaultModel
		}

		if viper.GetBool("headless") {
			prompt := viper.GetString("prompt")
			if prompt == "" {
				return fmt.Errorf("--headless requires --prompt")
			}
			runner := headless.New(cfg, model, os.Stdout)
			return runner.Run(context.Background(), prompt)
		}

		app := tui.NewApp(cfg, model)
		return app.Run(context.Background())
	},
}

// setup loads config and the logger after viper has read the settings file.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .radchat/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("model", "m", "", "model to chat with")
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.PersistentFlags().String("backend", "", "chat backend URL")
	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))

	rootCmd.Flags().StringP("prompt", "p", "", "send one prompt and print the answer")
	viper.BindPFlag("prompt", rootCmd.Flags().Lookup("prompt"))

	rootCmd.Flags().BoolP("headless", "H", false, "run without the chat screen (requires --prompt)")
	viper.BindPFlag("headless", rootCmd.Flags().Lookup("headless"))

	viper.SetDefault("provider", "github")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.session_max", 100)
	viper.SetDefault("server.session_ttl", "1h")
	viper.SetDefault("server.max_turns", 10)
	viper.SetDefault("server.request_timeout", "5m")

	viper.SetDefault("backend.url", "http://127.0.0.1:8000")
	viper.SetDefault("backend.timeout", "90s")

	viper.SetDefault("openai.base_url", provider.GitHubModelsEndpoint)
	viper.SetDefault("ollama.url", "http://localhost:11434")

	viper.SetDefault("tools.contacts_file", "data/contacts.json")
	viper.SetDefault("tools.acr_cache_file", "data/acr/index.json")
	viper.SetDefault("tools.semantic.enabled", false)
	viper.SetDefault("tools.semantic.embedder_model", "nomic-embed-text")
	viper.SetDefault("tools.semantic.embedder_url", "http://localhost:11434")

	viper.SetDefault("ui.thinking_min_ms", 800)
	viper.SetDefault("ui.scroll_threshold", 3)
	viper.SetDefault("ui.show_footer", true)

	viper.SetDefault("logging.log_file", "system.log")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./" + config.DefaultSettingsDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("RADCHAT")
	viper.AutomaticEnv()

	// GITHUB_TOKEN is the conventional way to hand over the hosted-model
	// credential; the settings file can still override it.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && !viper.IsSet("openai.token") {
		viper.Set("openai.token", token)
	}

	// Missing settings file is fine; defaults cover everything.
	_ = viper.ReadInConfig()
}
