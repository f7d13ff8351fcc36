package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/pixelbattles/pkg/api/handlers"
	"github.com/cbodonnell/pixelbattles/pkg/api/middleware"
	authproviders "github.com/cbodonnell/pixelbattles/pkg/auth/providers"
	"github.com/cbodonnell/pixelbattles/pkg/log"
	"github.com/cbodonnell/pixelbattles/pkg/repositories"
	"github.com/cbodonnell/pixelbattles/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	TLS  *TLSConfig
	// AuthProvider is optional. When set, mutating routes require a bearer token.
	AuthProvider authproviders.AuthProvider
	Repository   repositories.Repository
	Store        state.ProcessorStore
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	protect := func(h http.Handler) http.Handler { return h }
	if opts.AuthProvider != nil {
		protect = middleware.NewAuthMiddleware(opts.AuthProvider)
	}

	router := mux.NewRouter()
	router.Use(middleware.NewCORSMiddleware())

	router.Handle("/battles", handlers.HandleListBattles(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.Handle("/battles", protect(handlers.HandleCreateBattle(opts.Repository))).Methods(http.MethodPost)
	router.Handle("/battles/{battleID}", handlers.HandleGetBattle(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)

	games := router.PathPrefix("/games/{gameID}").Subrouter()
	games.Handle("/state", handlers.HandleGetGameState(opts.Store)).Methods(http.MethodGet, http.MethodOptions)
	games.Handle("/preview", handlers.HandleGetGamePreview(opts.Store)).Methods(http.MethodGet, http.MethodOptions)
	games.Handle("/actions", handlers.HandleListGameActions(opts.Store, opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	games.Handle("/actions", protect(handlers.HandlePlaceAction(opts.Store, opts.Repository))).Methods(http.MethodPost)

	return router
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
