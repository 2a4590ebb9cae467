package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hanzimap/internal/config"
	"hanzimap/internal/handler"
	"hanzimap/internal/hub"
	"hanzimap/internal/loader"
	"hanzimap/internal/service"
	"hanzimap/internal/session"
	"hanzimap/internal/watcher"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		source  string
		root    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph explorer",
		Long: `Serve the explorer page, its websocket sessions and the JSON API.

  hanzimap serve                               # graph_data.json in the working directory
  hanzimap serve --source data/chars.yaml      # YAML document, reloaded on change
  hanzimap serve --source sqlite:hanzimap.db   # catalog written by "hanzimap import"
  hanzimap serve --source https://host/graph_data.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("source") {
				cfg.Data.Source = source
			}
			if cmd.Flags().Changed("root") {
				cfg.Data.DefaultRoot = root
			}
			if noWatch {
				off := false
				cfg.Data.Watch = &off
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "Graph data source (file, URL or sqlite:path)")
	cmd.Flags().StringVar(&root, "root", "", "Root preselected in the dropdown")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the data file when it changes")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log.Println("Starting hanzimap server...")
	log.Println(cfg.Summary())

	src, err := loader.Open(cfg.Data.Source)
	if err != nil {
		return err
	}

	eventBus := service.NewEventBus()
	graphSvc := service.NewGraphService(src, eventBus, service.Options{
		DefaultRoot: cfg.Data.DefaultRoot,
		Layout:      cfg.Layout.Options(),
	})

	// A failed load leaves the page inert until the next successful reload
	if err := graphSvc.Load(ctx); err != nil {
		log.Printf("Starting without graph data: %v", err)
	} else {
		doc := graphSvc.Document()
		log.Printf("Graph data loaded from %s: %d nodes, %d edges", src, len(doc.Nodes), len(doc.Edges))
	}

	// Forward load events to SSE clients
	events := make(chan service.Event, 16)
	eventBus.Subscribe(events)

	sseHub := hub.New()
	sessions := session.NewManager(graphSvc, session.Options{
		IdleTimeout: cfg.Session.IdleTimeout.Duration(),
	})
	graphHandler := handler.NewGraphHandler(graphSvc)

	mux := http.NewServeMux()

	// Graph API
	mux.Handle("GET /graph_data.json", handler.Compress(http.HandlerFunc(graphHandler.GetGraph)))
	mux.Handle("GET /api/graph", handler.Compress(http.HandlerFunc(graphHandler.GetGraph)))
	mux.Handle("GET /api/roots", handler.Compress(http.HandlerFunc(graphHandler.GetRoots)))
	mux.Handle("GET /api/visible", handler.Compress(http.HandlerFunc(graphHandler.GetVisible)))
	mux.HandleFunc("POST /api/reload", graphHandler.Reload)

	// Sessions, events and metrics
	mux.Handle("GET /ws", sessions)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Static files
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return err
	}
	mux.Handle("GET /", handler.Compress(http.FileServer(http.FS(webContent))))

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCanceled(sseHub.Run(gctx))
	})

	g.Go(func() error {
		return ignoreCanceled(sessions.Run(gctx))
	})

	g.Go(func() error {
		for {
			select {
			case ev := <-events:
				sseHub.Broadcast(string(ev.Type), ev.Payload)
			case <-gctx.Done():
				return nil
			}
		}
	})

	if cfg.Data.WatchEnabled() && loader.IsFile(cfg.Data.Source) {
		w := watcher.New(cfg.Data.Source, func(string) {
			if err := graphSvc.Reload(gctx); err != nil {
				log.Printf("Failed to reload graph data: %v", err)
			}
		})
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Failed to watch %s: %v", cfg.Data.Source, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Println("Server stopped")
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
