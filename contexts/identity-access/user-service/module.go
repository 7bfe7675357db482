package userservice

import (
	"log/slog"

	httpadapter "smartspace/contexts/identity-access/user-service/adapters/http"
	"smartspace/contexts/identity-access/user-service/adapters/memory"
	"smartspace/contexts/identity-access/user-service/application"
	"smartspace/contexts/identity-access/user-service/domain/entities"
	"smartspace/contexts/identity-access/user-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository     ports.Repository
	HomeSmartspace string
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		HomeSmartspace: deps.HomeSmartspace,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.User, homeSmartspace string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository:     store,
		HomeSmartspace: homeSmartspace,
		Logger:         logger,
	})
	module.Store = store
	return module
}
