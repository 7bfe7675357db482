package elementservice

import (
	"log/slog"

	httpadapter "smartspace/contexts/spatial-catalog/element-service/adapters/http"
	"smartspace/contexts/spatial-catalog/element-service/adapters/memory"
	"smartspace/contexts/spatial-catalog/element-service/application"
	"smartspace/contexts/spatial-catalog/element-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository       ports.Repository
	Users            ports.UserDirectory
	Clock            ports.Clock
	ExpiryReversible bool
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:             deps.Repository,
		Users:            deps.Users,
		Clock:            deps.Clock,
		ExpiryReversible: deps.ExpiryReversible,
		Logger:           deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(seedActors []ports.ActorRecord, logger *slog.Logger) Module {
	store := memory.NewStore(seedActors)
	module := NewModule(Dependencies{
		Repository: store,
		Users:      store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
