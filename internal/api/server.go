package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raju11sui/Outreacher-ai/internal/provider"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
	"github.com/Raju11sui/Outreacher-ai/internal/service"
)

// ProviderStatus reports which provider credentials are configured.
type ProviderStatus interface {
	Configured() provider.Status
}

// StorageStatus reports which persistence backend is in use.
type StorageStatus interface {
	Kind(ctx context.Context) repository.BackendKind
}

type Deps struct {
	Generator         *service.GenerationService
	Users             *service.UserService
	Subscriptions     *service.SubscriptionService
	Campaigns         *service.CampaignService
	Providers         ProviderStatus
	Storage           StorageStatus
	GenerationTimeout time.Duration
}

type Server struct {
	addr          string
	log           *slog.Logger
	generator     *service.GenerationService
	users         *service.UserService
	subscriptions *service.SubscriptionService
	campaigns     *service.CampaignService
	providers     ProviderStatus
	storage       StorageStatus
	writeTimeout  time.Duration
	now           func() time.Time
	router        *chi.Mux
}

func NewServer(addr string, log *slog.Logger, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:          addr,
		log:           log,
		generator:     deps.Generator,
		users:         deps.Users,
		subscriptions: deps.Subscriptions,
		campaigns:     deps.Campaigns,
		providers:     deps.Providers,
		storage:       deps.Storage,
		writeTimeout:  deps.GenerationTimeout + 15*time.Second,
		now:           time.Now,
		router:        r,
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/health", s.handleHealth)

		r.Group(func(authed chi.Router) {
			authed.Use(s.identityMiddleware)
			authed.Get("/me", s.handleMe)
			authed.Get("/subscription", s.handleSubscription)
			authed.Route("/campaigns", func(r chi.Router) {
				r.Get("/", s.handleListCampaigns)
				r.Post("/", s.handleCreateCampaign)
				r.Get("/{id}", s.handleGetCampaign)
				r.Get("/{id}/messages", s.handleCampaignMessages)
				r.Post("/{id}/generate", s.handleGenerateForCampaign)
				r.Post("/{id}/export", s.handleExportCampaign)
			})
			authed.Get("/messages", s.handleListMessages)
			authed.Post("/messages", s.handleSaveMessage)

			authed.Group(func(admin chi.Router) {
				admin.Use(s.adminOnly)
				admin.Put("/admin/users/{userId}/plan", s.handleChangePlan)
			})
		})
	})
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("http shutdown error", "err", err)
		}
	}()

	s.log.Info("api listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api listen: %w", err)
	}
	return nil
}
