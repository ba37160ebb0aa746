package electionservice

import (
	"log/slog"

	httpadapter "tallyard/contexts/election-operations/election-service/adapters/http"
	"tallyard/contexts/election-operations/election-service/adapters/memory"
	"tallyard/contexts/election-operations/election-service/application/commands"
	"tallyard/contexts/election-operations/election-service/application/queries"
	"tallyard/contexts/election-operations/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	electionUseCase := commands.ElectionUseCase{
		Elections: deps.Elections,
		Audit:     deps.Audit,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	listUseCase := queries.ListUseCase{
		Elections: deps.Elections,
		Clock:     deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections: electionUseCase,
			Lists:     listUseCase,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections: store,
		Audit:     store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
