package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/provider"
	"github.com/radworks/radchat/pkg/server"
	"github.com/radworks/radchat/pkg/tools"
	"github.com/radworks/radchat/pkg/tools/acr"
	"github.com/radworks/radchat/pkg/tools/phonebook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat backend",
	Long: `Serves the chat API: streaming chat with tool execution, model
listing and session management. The phone directory and ACR criteria
cache are loaded at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		registry, err := buildRegistry(ctx, cfg)
		if err != nil {
			return err
		}

		factory := func(model string) (server.Streamer, error) {
			llm, err := provider.NewModel(cfg, model)
			if err != nil {
				return nil, err
			}
			return provider.NewAssistant(llm, registry, cfg.Server.MaxTurns), nil
		}

		return server.New(cfg, registry, factory).ListenAndServe(ctx)
	},
}

// buildRegistry loads the tool backends and registers every tool.
func buildRegistry(ctx context.Context, cfg *config.Config) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	catalog, err := phonebook.LoadCatalog(cfg.Tools.ContactsFile)
	if err != nil {
		return nil, err
	}
	for _, tool := range phonebook.Tools(phonebook.New(catalog)) {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}

	library, err := acr.LoadLibrary(cfg.Tools.ACRCacheFile)
	if err != nil {
		return nil, err
	}

	var semantic *acr.SemanticIndex
	if cfg.Tools.Semantic.Enabled {
		semantic, err = acr.NewSemanticIndex(ctx, library, cfg.Tools.Semantic.EmbedderURL, cfg.Tools.Semantic.EmbedderModel)
		if err != nil {
			// Keyword search still works; don't refuse to start.
			logger.Warn("serve: semantic index unavailable, using keyword search: %v", err)
			semantic = nil
		}
	}
	for _, tool := range acr.Tools(library, semantic) {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}

	logger.Info("serve: registered %d tools", len(registry.List()))
	return registry, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
