package services

import (
	"log/slog"

	"github.com/elimu-cbc/quiz-service/internal/cache"
	"github.com/elimu-cbc/quiz-service/internal/engine"
	"github.com/elimu-cbc/quiz-service/internal/events"
	"github.com/elimu-cbc/quiz-service/internal/generator"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

// ServiceManager hands out the service layer to the handlers.
type ServiceManager interface {
	Quiz() QuizService
	Attempt() AttemptService
	Performance() PerformanceService
	Export() ExportService
}

// Dependencies carries everything the services are wired from. Construction
// happens once in main; nothing here is a global.
type Dependencies struct {
	Generator    *generator.AIQuizGenerator
	Analyzer     *generator.PerformanceAnalyzer
	Engine       *engine.AdaptiveQuizEngine
	AttemptStore engine.AttemptStore
	QuizRepo     repositories.QuizRepository
	QuizCache    *cache.QuizCache
	Archive      repositories.AttemptArchive
	Publisher    events.EventPublisher
	Logger       *slog.Logger
	Validator    *utils.Validator
}

type serviceManager struct {
	quiz        QuizService
	attempt     AttemptService
	performance PerformanceService
	export      ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	quiz := NewQuizService(deps.Generator, deps.QuizRepo, deps.QuizCache, deps.Publisher, deps.Logger, deps.Validator)
	attempt := NewAttemptService(deps.Engine, deps.AttemptStore, quiz, deps.Archive, deps.Publisher, deps.Logger, deps.Validator)
	performance := NewPerformanceService(deps.Archive, deps.Analyzer, deps.Logger)
	export := NewExportService(quiz, deps.Archive, deps.Logger)

	return &serviceManager{
		quiz:        quiz,
		attempt:     attempt,
		performance: performance,
		export:      export,
	}
}

func (m *serviceManager) Quiz() QuizService               { return m.quiz }
func (m *serviceManager) Attempt() AttemptService         { return m.attempt }
func (m *serviceManager) Performance() PerformanceService { return m.performance }
func (m *serviceManager) Export() ExportService           { return m.export }
