package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"filmera/config"
	"filmera/handlers"
	"filmera/internal/database"
	"filmera/services/catalog"
	"filmera/services/discover"
	"filmera/services/proxy"
	"filmera/services/records"
	"filmera/services/watchlist"
	"filmera/utils"
)

func main() {
	settingsPath := flag.String("settings", "data/settings.json", "path to the settings file")
	flag.Parse()

	manager := config.NewManager(*settingsPath)
	settings, err := manager.Load()
	if err != nil {
		log.Fatalf("[main] load settings: %v", err)
	}

	if settings.Server.LogPath != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   settings.Server.LogPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	creds := config.CredentialsFromEnv()
	if !creds.Configured() {
		log.Printf("[main] warning: provider API keys are not configured; upstream calls will fail")
	}

	db, err := database.NewDB(database.Config{DatabasePath: settings.Server.DatabasePath})
	if err != nil {
		log.Fatalf("[main] open database: %v", err)
	}
	defer db.Close()

	catalogClient := catalog.NewClient(settings.Providers.CatalogBaseURL, creds.CatalogAPIKey)
	recordClient := records.NewClient(settings.Providers.RecordBaseURL, creds.RecordAPIKey)
	discoverSvc := discover.NewService(catalogClient, recordClient, settings.Discovery)
	watchlistSvc := watchlist.NewService(db.State, recordClient)
	proxySvc := proxy.NewService(
		settings.Providers.CatalogBaseURL,
		settings.Providers.RecordBaseURL,
		creds.CatalogAPIKey,
		creds.RecordAPIKey,
	)

	proxyHandler := handlers.NewProxyHandler(proxySvc)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	pages := handlers.NewPagesHandler(discoverSvc, watchlistSvc, recordClient, settings.Providers.ImageBaseURL, settings.View)

	router := utils.NewRouter(settings.Server.AllowedOrigin)

	// Proxy endpoint. The handler owns the 405 response shape, so no
	// method restriction here.
	router.HandleFunc("/api/fetch", proxyHandler.Fetch)

	// Watchlist JSON API.
	router.HandleFunc("/api/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/watchlist", watchlistHandler.Add).Methods(http.MethodPost)
	router.HandleFunc("/api/watchlist/{key}", watchlistHandler.Remove).Methods(http.MethodDelete)
	router.HandleFunc("/api/watchlist/{key}/watched", watchlistHandler.ToggleWatched).Methods(http.MethodPost)
	router.HandleFunc("/api/watchlist/{key}/details", watchlistHandler.UpdateDetails).Methods(http.MethodPut)

	// Rendered pages.
	router.HandleFunc("/", pages.Home).Methods(http.MethodGet)
	router.HandleFunc("/search", pages.Search).Methods(http.MethodGet)
	router.HandleFunc("/movie/{key}", pages.Movie).Methods(http.MethodGet)
	router.HandleFunc("/watchlist/add", pages.AddForm).Methods(http.MethodPost)
	router.HandleFunc("/watchlist/{key}/remove", pages.RemoveForm).Methods(http.MethodPost)
	router.HandleFunc("/watchlist/{key}/watched", pages.WatchedForm).Methods(http.MethodPost)
	router.HandleFunc("/watchlist/{key}/details", pages.DetailsForm).Methods(http.MethodPost)

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	server := &http.Server{
		Addr:    settings.Server.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[main] listening on %s", settings.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
