package handler

import (
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// People: /v1/people
// ============================================================

type detachRequest struct {
	CompanyID int64 `json:"company_id"`
}

func listPeopleHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/people")
		defer span.End()

		writePage(w, r, logger, svc.List(ctx, SessionFromContext(ctx), parsePagination(r)))
	}
}

func createPersonHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/people")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Create(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func getPersonHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/people/{personId}")
		defer span.End()

		id, ok := uuidParam(w, r, "personId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Details(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updatePersonHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/people/{personId}")
		defer span.End()

		id, ok := uuidParam(w, r, "personId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Update(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deletePersonHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/people/{personId}")
		defer span.End()

		id, ok := uuidParam(w, r, "personId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Delete(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

// detachPersonHandler unlinks a person from one company, keeping the rest
// of its associations.
func detachPersonHandler(svc *service.PersonService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/people/{personId}/detach")
		defer span.End()

		id, ok := uuidParam(w, r, "personId")
		if !ok {
			return
		}
		var req detachRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.CompanyID <= 0 {
			writeError(w, http.StatusBadRequest, "company_id is required")
			return
		}
		span.SetAttributes(attribute.Int64("company.id", req.CompanyID))

		sess := SessionFromContext(ctx)
		current := svc.Details(ctx, sess, id)
		if current.OK() && current.Value == nil {
			current = domain.Fail[domain.Person](domain.KindNotFound)
		}
		if !current.OK() {
			writeOutcome(w, r, logger, current, http.StatusOK)
			return
		}
		writeOutcome(w, r, logger, svc.DetachFromCompany(ctx, sess, *current.Value, req.CompanyID), http.StatusOK)
	}
}

// ============================================================
// Opportunities: /v1/opportunities
// ============================================================

type stageRequest struct {
	Stage string `json:"stage"`
}

func listOpportunitiesHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/opportunities")
		defer span.End()

		writePage(w, r, logger, svc.List(ctx, SessionFromContext(ctx), parsePagination(r)))
	}
}

func myOpportunitiesHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/opportunities/mine")
		defer span.End()

		writePage(w, r, logger, svc.Mine(ctx, SessionFromContext(ctx), parsePagination(r)))
	}
}

func createOpportunityHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/opportunities")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Create(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func getOpportunityHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/opportunities/{opportunityId}")
		defer span.End()

		id, ok := uuidParam(w, r, "opportunityId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Details(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updateOpportunityHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/opportunities/{opportunityId}")
		defer span.End()

		id, ok := uuidParam(w, r, "opportunityId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Update(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deleteOpportunityHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/opportunities/{opportunityId}")
		defer span.End()

		id, ok := uuidParam(w, r, "opportunityId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Delete(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func moveStageHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/opportunities/{opportunityId}/stage")
		defer span.End()

		id, ok := uuidParam(w, r, "opportunityId")
		if !ok {
			return
		}
		var req stageRequest
		if !decodeBody(w, r, &req) {
			return
		}
		span.SetAttributes(attribute.String("opportunity.stage", req.Stage))
		writeOutcome(w, r, logger, svc.MoveStage(ctx, SessionFromContext(ctx), id, req.Stage), http.StatusOK)
	}
}

func detachOpportunityHandler(svc *service.OpportunityService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/opportunities/{opportunityId}/detach")
		defer span.End()

		id, ok := uuidParam(w, r, "opportunityId")
		if !ok {
			return
		}
		var req detachRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.CompanyID <= 0 {
			writeError(w, http.StatusBadRequest, "company_id is required")
			return
		}

		sess := SessionFromContext(ctx)
		current := svc.Details(ctx, sess, id)
		if current.OK() && current.Value == nil {
			current = domain.Fail[domain.Opportunity](domain.KindNotFound)
		}
		if !current.OK() {
			writeOutcome(w, r, logger, current, http.StatusOK)
			return
		}
		writeOutcome(w, r, logger, svc.DetachFromCompany(ctx, sess, *current.Value, req.CompanyID), http.StatusOK)
	}
}

// ============================================================
// Tasks: /v1/tasks
// ============================================================

func listTasksHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tasks")
		defer span.End()

		writePage(w, r, logger, svc.List(ctx, SessionFromContext(ctx), parsePagination(r)))
	}
}

func myTasksHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tasks/mine")
		defer span.End()

		writePage(w, r, logger, svc.Mine(ctx, SessionFromContext(ctx), parsePagination(r)))
	}
}

func createTaskHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/tasks")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Create(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func getTaskHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tasks/{taskId}")
		defer span.End()

		id, ok := uuidParam(w, r, "taskId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Details(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updateTaskHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/tasks/{taskId}")
		defer span.End()

		id, ok := uuidParam(w, r, "taskId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Update(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deleteTaskHandler(svc *service.TaskService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/tasks/{taskId}")
		defer span.End()

		id, ok := uuidParam(w, r, "taskId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Delete(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

// ============================================================
// Notes: /v1/{companies|people|opportunities}/{id}/notes
// ============================================================

// noteRoutes mounts the note endpoints below a parent route whose id is
// read from param.
func noteRoutes(r chi.Router, svc *service.NoteService, parent service.NoteParent, param string, logger *zap.Logger) {
	r.Get("/notes", func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "GET notes")
		defer span.End()
		span.SetAttributes(attribute.String("note.parent", string(parent)))

		parentID, ok := uuidParam(w, req, param)
		if !ok {
			return
		}
		writePage(w, req, logger, svc.List(ctx, SessionFromContext(ctx), parent, parentID, parsePagination(req)))
	})

	r.Post("/notes", func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "POST notes")
		defer span.End()
		span.SetAttributes(attribute.String("note.parent", string(parent)))

		parentID, ok := uuidParam(w, req, param)
		if !ok {
			return
		}
		fields, ok := decodeFields(w, req)
		if !ok {
			return
		}
		writeOutcome(w, req, logger, svc.Create(ctx, SessionFromContext(ctx), parent, parentID, fields), http.StatusCreated)
	})

	r.Get("/notes/{noteId}", func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "GET note")
		defer span.End()

		parentID, noteID, ok := noteParams(w, req, param)
		if !ok {
			return
		}
		writeOutcome(w, req, logger, svc.Get(ctx, SessionFromContext(ctx), parent, parentID, noteID), http.StatusOK)
	})

	r.Patch("/notes/{noteId}", func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "PATCH note")
		defer span.End()

		parentID, noteID, ok := noteParams(w, req, param)
		if !ok {
			return
		}
		fields, ok := decodeFields(w, req)
		if !ok {
			return
		}
		writeOutcome(w, req, logger, svc.Update(ctx, SessionFromContext(ctx), parent, parentID, noteID, fields), http.StatusOK)
	})

	r.Delete("/notes/{noteId}", func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(req.Context(), "DELETE note")
		defer span.End()

		parentID, noteID, ok := noteParams(w, req, param)
		if !ok {
			return
		}
		writeOutcome(w, req, logger, svc.Delete(ctx, SessionFromContext(ctx), parent, parentID, noteID), http.StatusOK)
	})
}

func noteParams(w http.ResponseWriter, r *http.Request, param string) (parentID, noteID string, ok bool) {
	if parentID, ok = uuidParam(w, r, param); !ok {
		return "", "", false
	}
	if noteID, ok = uuidParam(w, r, "noteId"); !ok {
		return "", "", false
	}
	return parentID, noteID, true
}
