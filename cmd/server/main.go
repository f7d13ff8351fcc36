package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/pixelbattles/pkg/api"
	authproviders "github.com/cbodonnell/pixelbattles/pkg/auth/providers"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/network"
	"github.com/cbodonnell/pixelbattles/pkg/queue"
	"github.com/cbodonnell/pixelbattles/pkg/regions"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/cbodonnell/pixelbattles/pkg/version"
	"github.com/cbodonnell/pixelbattles/pkg/workers"
)

func main() {
	port := flag.Int("port", 9090, "HTTP API port to listen on")
	wsPort := flag.Int("ws-port", 8888, "WebSocket port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	saveInterval := flag.Duration("save-interval", 5*time.Second, "Interval between commits of pending actions")
	broadcastInterval := flag.Duration("broadcast-interval", 100*time.Millisecond, "Interval between broadcasts of committed actions")
	regionCellSize := flag.Int("region-cell-size", regions.DefaultCellSize, "Cell size in pixels of the viewer region index")
	maxCatchUp := flag.Int("max-catch-up", network.DefaultMaxCatchUpActions, "Committed actions sent on subscribe before falling back to a full state")
	migrations := flag.String("migrations", "./migrations/sqlite", "Directory of the sqlite migrations")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting pixel battles server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var authProvider authproviders.AuthProvider
	if firebaseProjectID := os.Getenv("PIXELBATTLES_FIREBASE_PROJECT_ID"); firebaseProjectID != "" {
		firebaseAuthProvider, err := authproviders.NewFirebaseAuthProvider(ctx, firebaseProjectID, os.Getenv("PIXELBATTLES_FIREBASE_API_KEY"))
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
		authProvider = firebaseAuthProvider
	} else {
		log.Warn("PIXELBATTLES_FIREBASE_PROJECT_ID is not set, authentication is disabled")
	}

	connStr := os.Getenv("PIXELBATTLES_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://pixelbattles.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	var repository repositories.Repository
	switch u.Scheme {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, u.Host+u.Path, *migrations)
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
	case "postgres", "postgresql":
		repository, err = repositories.NewPostgresRepository(ctx, u.String())
		if err != nil {
			panic(fmt.Sprintf("Failed to create Postgres repository: %v", err))
		}
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
	defer repository.Close(context.Background())

	store := state.NewInMemoryProcessorStore(state.NewInMemoryProcessorStoreOptions{
		Loader:         repository.GetGame,
		RegionCellSize: *regionCellSize,
	})

	var tls *api.TLSConfig
	tlsCertFile := os.Getenv("PIXELBATTLES_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("PIXELBATTLES_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		tls = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}

	clientManager := network.NewClientManager()
	networkManagerOpts := network.NewNetworkManagerOptions{
		AuthProvider:      authProvider,
		ClientManager:     clientManager,
		Store:             store,
		Repository:        repository,
		WSPort:            *wsPort,
		MaxCatchUpActions: *maxCatchUp,
	}
	if tls != nil {
		networkManagerOpts.WSServerTLS = &network.TLSConfig{
			CertFile: tls.CertFile,
			KeyFile:  tls.KeyFile,
		}
	}
	networkManager := network.NewNetworkManager(networkManagerOpts)
	networkManager.Start(ctx)

	connectionEventWorker := workers.NewConnectionEventWorker(workers.NewConnectionEventWorkerOptions{
		ConnectionEventChan: clientManager.GetConnectionEventChan(),
	})
	go connectionEventWorker.Start(ctx)

	updateQueue := queue.NewInMemoryQueue(10000)

	broadcastWorker := workers.NewBroadcastWorker(workers.NewBroadcastWorkerOptions{
		Store:       store,
		UpdateQueue: updateQueue,
		Sender:      networkManager,
		Interval:    *broadcastInterval,
	})
	go broadcastWorker.Start(ctx)

	saveGameStateWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Repository:  repository,
		Store:       store,
		UpdateQueue: updateQueue,
		Interval:    *saveInterval,
	})
	saveDone := make(chan struct{})
	go func() {
		saveGameStateWorker.Start(ctx)
		close(saveDone)
	}()

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *port,
		TLS:          tls,
		AuthProvider: authProvider,
		Repository:   repository,
		Store:        store,
	})
	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}

	// the save worker flushes pending actions before the repository is closed
	<-saveDone
	log.Info("Server stopped")
}
