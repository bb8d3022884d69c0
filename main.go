package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	assistantx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/assistant"
	catalogx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/catalog"
	promptx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/prompt"
	sessionx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/session"
	toolx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/tool"
	configx "github.com/tanpawarit/NexusFlow-Catalog-Agent/pkg/config"
	logx "github.com/tanpawarit/NexusFlow-Catalog-Agent/pkg/logger"
	openrouterx "github.com/tanpawarit/NexusFlow-Catalog-Agent/pkg/openrouter"
	serverx "github.com/tanpawarit/NexusFlow-Catalog-Agent/server"
)

type AppConfig struct {
	CatalogPath         string `envconfig:"CATALOG_PATH" split_words:"true"`
	HistoryWindow       int    `envconfig:"HISTORY_WINDOW" split_words:"true" default:"6"`
	MaxToolRounds       int    `envconfig:"MAX_TOOL_ROUNDS" split_words:"true" default:"4"`
	SkipCredentialCheck bool   `envconfig:"SKIP_CREDENTIAL_CHECK" split_words:"true" default:"false"`
}

func main() {
	mcpMode := flag.Bool("mcp", false, "serve catalog tools over MCP stdio instead of the HTTP chat API")

	// Config loading parses flags, so the transport mode is known from
	// here on. The logger is initialized only afterwards: stdout carries
	// the protocol frames in stdio mode, so logs must move to stderr
	// before anything is logged.
	appCfg := configx.MustNew[AppConfig]("AGENT")
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
	log.Logger = transportLogger(log.Logger, *mcpMode, os.Stderr)

	handle, err := loadCatalog(appCfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().Int("products", handle.Len()).Msg("catalog loaded")

	gateway, err := toolx.NewGateway(handle)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool gateway")
	}

	if *mcpMode {
		log.Info().Msg("serving catalog tools over MCP stdio")
		if err := serverx.ServeMCP(serverx.NewMCPServer(gateway)); err != nil {
			log.Fatal().Err(err).Msg("mcp server stopped")
		}
		return
	}

	ctx := context.Background()
	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")

	if !appCfg.SkipCredentialCheck {
		client, err := openrouterx.NewClient(*openRouterCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build openrouter client")
		}
		pingCtx, cancel := context.WithTimeout(ctx, openRouterCfg.Timeout)
		if err := openrouterx.Ping(pingCtx, client); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("openrouter credential check failed")
		}
		cancel()
	}

	sessions := sessionx.NewMemoryStore()

	agent, err := assistantx.New(ctx, openRouterCfg, gateway, sessions, promptx.Assistant(), assistantx.Config{
		HistoryWindow: appCfg.HistoryWindow,
		MaxToolRounds: appCfg.MaxToolRounds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build assistant")
	}

	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(*serverCfg, agent)
	if err != nil {
		log.Fatal().Err(err).Msg("build http server")
	}

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-stopCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}

// transportLogger keeps stdout clean in stdio mode, where the protocol
// owns it; in HTTP mode the logger is returned as-is.
func transportLogger(base zerolog.Logger, mcpMode bool, stderr io.Writer) zerolog.Logger {
	if mcpMode {
		return base.Output(stderr)
	}
	return base
}

// loadCatalog prefers an external CSV when configured, falling back to the
// dataset compiled into the binary.
func loadCatalog(path string) (*catalogx.Handle, error) {
	if path == "" {
		return catalogx.LoadEmbedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogx.Load(f)
}
