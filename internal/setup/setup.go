package setup

import (
	"github.com/avdeyev/liblend/internal/config"
	"github.com/avdeyev/liblend/internal/googleid"
	"github.com/avdeyev/liblend/internal/handler"
	"github.com/avdeyev/liblend/internal/middleware"
	"github.com/avdeyev/liblend/internal/service"
	"github.com/avdeyev/liblend/internal/storage/pg"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Gate    *middleware.Gate
	Config  *config.Config
}

// SetupDependencies wires storage, services, verifier, gate and handlers.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	registry := service.NewRegistry(storage, cfg.Private.AdminSignupCode)
	assignments := service.NewAssignments(storage, storage)
	catalog := service.NewCatalog(storage)
	verifier := googleid.New(cfg.Private.GoogleClientId)

	h := handler.New(registry, assignments, catalog, verifier)
	gate := middleware.NewGate(storage)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Gate:    gate,
		Config:  cfg,
	}, nil
}
