package ballotengine

import (
	"log/slog"

	httpadapter "tallyard/contexts/election-operations/ballot-engine/adapters/http"
	"tallyard/contexts/election-operations/ballot-engine/adapters/memory"
	"tallyard/contexts/election-operations/ballot-engine/application/commands"
	"tallyard/contexts/election-operations/ballot-engine/application/queries"
	"tallyard/contexts/election-operations/ballot-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ballots   ports.BallotRepository
	Directory ports.ElectionDirectory
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitUseCase := commands.SubmitUseCase{
		Ballots:   deps.Ballots,
		Directory: deps.Directory,
		Audit:     deps.Audit,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submissions: submitUseCase,
			Tallies:     queries.NewTallyUseCase(deps.Ballots, deps.Directory),
			Decisions: queries.VoterDecisionsUseCase{
				Ballots: deps.Ballots,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ballots:   store,
		Directory: store,
		Audit:     store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
