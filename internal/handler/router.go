package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the domain actions exposed over HTTP.
type Services struct {
	Directory     *service.Directory
	Workspace     *service.WorkspaceService
	Companies     *service.CompanyService
	People        *service.PersonService
	Opportunities *service.OpportunityService
	Tasks         *service.TaskService
	Notes         *service.NoteService
	Kanban        *service.KanbanService
}

// NewRouter creates the HTTP router with all routes and middleware.
// checker may be nil, in which case /healthz only reports the BFF itself.
func NewRouter(svc Services, verifier *SessionVerifier, checker port.HealthChecker, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.AccessLog(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(checker, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/crm", crmMetricsHandler(metrics))

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(verifier, logger))

			// Current user & workspace
			r.Get("/me", getMeHandler(svc.Directory, logger))
			r.Patch("/me", updateMeHandler(svc.Directory, logger))
			r.Get("/workspace", getWorkspaceHandler(svc.Workspace, logger))
			r.Patch("/workspace", updateWorkspaceHandler(svc.Workspace, logger))
			r.Get("/workspace/users", workspaceUsersHandler(svc.Workspace, logger))

			// Sidebar views
			r.Get("/views", listViewsHandler(svc.Workspace, logger))
			r.Post("/views", createViewHandler(svc.Workspace, logger))
			r.Patch("/views/{viewId}", updateViewHandler(svc.Workspace, logger))
			r.Delete("/views/{viewId}", deleteViewHandler(svc.Workspace, logger))

			// Deals
			r.Post("/deals", createDealHandler(svc.Workspace, logger))
			r.Get("/deals/{dealId}", getDealHandler(svc.Workspace, logger))
			r.Patch("/deals/{dealId}", updateDealHandler(svc.Workspace, logger))
			r.Delete("/deals/{dealId}", deleteDealHandler(svc.Workspace, logger))

			// Companies
			r.Get("/companies", listCompaniesHandler(svc.Companies, logger))
			r.Post("/companies", createCompanyHandler(svc.Companies, logger))
			r.Route("/companies/{companyId}", func(r chi.Router) {
				r.Get("/", getCompanyHandler(svc.Companies, logger))
				r.Get("/page", companyPageHandler(svc.Companies, logger))
				r.Patch("/", updateCompanyHandler(svc.Companies, logger))
				r.Delete("/", deleteCompanyHandler(svc.Companies, logger))
				r.Put("/address", updateAddressHandler(svc.Companies, logger))
				r.Put("/owners", setOwnersHandler(svc.Companies, logger))
				r.Post("/owners", addOwnerHandler(svc.Companies, logger))
				r.Delete("/owners/{ownerId}", removeOwnerHandler(svc.Companies, logger))
				noteRoutes(r, svc.Notes, service.NotesOfCompany, "companyId", logger)
			})

			// People
			r.Get("/people", listPeopleHandler(svc.People, logger))
			r.Post("/people", createPersonHandler(svc.People, logger))
			r.Route("/people/{personId}", func(r chi.Router) {
				r.Get("/", getPersonHandler(svc.People, logger))
				r.Patch("/", updatePersonHandler(svc.People, logger))
				r.Delete("/", deletePersonHandler(svc.People, logger))
				r.Post("/detach", detachPersonHandler(svc.People, logger))
				noteRoutes(r, svc.Notes, service.NotesOfPerson, "personId", logger)
			})

			// Opportunities
			r.Get("/opportunities", listOpportunitiesHandler(svc.Opportunities, logger))
			r.Get("/opportunities/mine", myOpportunitiesHandler(svc.Opportunities, logger))
			r.Post("/opportunities", createOpportunityHandler(svc.Opportunities, logger))
			r.Route("/opportunities/{opportunityId}", func(r chi.Router) {
				r.Get("/", getOpportunityHandler(svc.Opportunities, logger))
				r.Patch("/", updateOpportunityHandler(svc.Opportunities, logger))
				r.Delete("/", deleteOpportunityHandler(svc.Opportunities, logger))
				r.Put("/stage", moveStageHandler(svc.Opportunities, logger))
				r.Post("/detach", detachOpportunityHandler(svc.Opportunities, logger))
				noteRoutes(r, svc.Notes, service.NotesOfOpportunity, "opportunityId", logger)
			})

			// Tasks
			r.Get("/tasks", listTasksHandler(svc.Tasks, logger))
			r.Get("/tasks/mine", myTasksHandler(svc.Tasks, logger))
			r.Post("/tasks", createTaskHandler(svc.Tasks, logger))
			r.Get("/tasks/{taskId}", getTaskHandler(svc.Tasks, logger))
			r.Patch("/tasks/{taskId}", updateTaskHandler(svc.Tasks, logger))
			r.Delete("/tasks/{taskId}", deleteTaskHandler(svc.Tasks, logger))

			// Kanban
			r.Get("/kanban", kanbanBoardHandler(svc.Kanban, logger))
			r.Get("/kanban/columns", kanbanColumnsHandler(svc.Kanban, logger))
			r.Put("/kanban/columns/{columnId}/order", reorderColumnHandler(svc.Kanban, logger))
			r.Post("/kanban/cards", createCardHandler(svc.Kanban, logger))
			r.Post("/kanban/cards/bulk", bulkMoveHandler(svc.Kanban, logger))
			r.Get("/kanban/cards/{cardId}", getCardHandler(svc.Kanban, logger))
			r.Patch("/kanban/cards/{cardId}", updateCardHandler(svc.Kanban, logger))
			r.Delete("/kanban/cards/{cardId}", deleteCardHandler(svc.Kanban, logger))
			r.Put("/kanban/cards/{cardId}/stage", moveCardHandler(svc.Kanban, logger))
		})
	})

	return r
}

// ============================================================
// Operational
// ============================================================

func healthzHandler(checker port.HealthChecker, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "citadel-bfa", Status: "healthy", LastChecked: now},
		}

		if checker != nil {
			start := time.Now()
			err := checker.Ping(r.Context())
			status := "healthy"
			if err != nil {
				status = "degraded"
				logger.Warn("health: crm unreachable", zap.Error(err))
			}
			services = append(services, domain.ServiceHealth{
				Name: "crm", Status: status, LatencyMs: time.Since(start).Milliseconds(), LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overallStatus = s.Status
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func crmMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}
