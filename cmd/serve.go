package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/github"
	"github.com/fiveonefour/moosedocs/internal/guides"
	"github.com/fiveonefour/moosedocs/internal/include"
	"github.com/fiveonefour/moosedocs/internal/nav"
	"github.com/fiveonefour/moosedocs/internal/render"
	"github.com/fiveonefour/moosedocs/internal/search"
	"github.com/fiveonefour/moosedocs/internal/server"
	"github.com/fiveonefour/moosedocs/internal/watcher"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the docs content tree over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		addr := cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := newPipeline()
		contentFS := os.DirFS(cfg.ContentRoot)

		navTree, err := nav.Load(contentFS)
		if err != nil {
			return err
		}

		srv := server.New(server.Options{
			Loader:         p.loader,
			Resolver:       include.NewResolver(contentFS, include.PolicyWarn, cfg.IncludeMaxDepth, logger),
			Renderer:       render.New(),
			Exporter:       p.exporter,
			Guides:         guides.NewService(contentFS, logger),
			Nav:            navTree,
			Stars:          starsClient(),
			Logger:         logger,
			SearchTopK:     cfg.SearchTopK,
			SearchMinScore: cfg.SearchMinScore,
		})

		rebuild := func() {
			idx, err := search.Build(ctx, p.loader, p.exporter, currentOrSavedIndex(srv), buildOptions(), logger)
			if err != nil {
				logger.Warn("search index build failed", zap.Error(err))
				return
			}
			srv.SwapIndex(idx)
			if err := idx.Save(cfg.IndexPathOrDefault()); err != nil {
				logger.Warn("search index save failed", zap.Error(err))
			}
		}

		// Initial index build off the serving path; search degrades to
		// empty results until it lands.
		go rebuild()

		w, err := watcher.New(cfg.ContentRoot, watcher.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("content watching disabled", zap.Error(err))
		} else {
			go w.Run(ctx, func() {
				logger.Info("content changed, reloading")
				srv.InvalidateGuides()
				go rebuild()
			})
		}

		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func starsClient() *github.Client {
	if cfg.StarsRepo == "" {
		return nil
	}
	return github.NewClientWithOptions(
		cfg.StarsRepo,
		time.Duration(cfg.StarsTTLSec)*time.Second,
		time.Duration(cfg.HTTPTimeoutSec)*time.Second,
		cfg.RetryMaxAttempts,
		time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(cfg.RetryMaxDelayMs)*time.Millisecond,
		logger,
	)
}

func buildOptions() search.BuildOptions {
	return search.BuildOptions{
		Language:       cfg.DefaultLanguage,
		ChunkMaxTokens: cfg.ChunkMaxTokens,
		ChunkOverlap:   cfg.ChunkOverlap,
	}
}

// currentOrSavedIndex prefers the index already serving, falling back to
// the on-disk snapshot from a previous run so unchanged documents are not
// re-chunked.
func currentOrSavedIndex(srv *server.Server) *search.Index {
	if idx := srv.CurrentIndex(); idx != nil {
		return idx
	}
	idx, err := search.Load(cfg.IndexPathOrDefault())
	if err != nil {
		return nil
	}
	return idx
}
