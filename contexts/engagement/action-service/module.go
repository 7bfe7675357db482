package actionservice

import (
	"log/slog"

	httpadapter "smartspace/contexts/engagement/action-service/adapters/http"
	"smartspace/contexts/engagement/action-service/adapters/memory"
	"smartspace/contexts/engagement/action-service/application"
	"smartspace/contexts/engagement/action-service/domain/entities"
	domainservices "smartspace/contexts/engagement/action-service/domain/services"
	"smartspace/contexts/engagement/action-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Users      ports.UserDirectory
	Elements   ports.ElementDirectory
	Scores     ports.PlayerScores
	Clock      ports.Clock
	Points     domainservices.PointsRule
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Users:    deps.Users,
		Elements: deps.Elements,
		Scores:   deps.Scores,
		Clock:    deps.Clock,
		Points:   deps.Points,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(
	seedActors []ports.ActorRecord,
	seedElements []entities.ElementRef,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seedActors, seedElements)
	module := NewModule(Dependencies{
		Repository: store,
		Users:      store,
		Elements:   store,
		Scores:     store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
