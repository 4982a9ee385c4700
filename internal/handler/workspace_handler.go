package handler

import (
	"net/http"
	"strconv"

	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultWorkspaceUserLimit = 100

// ============================================================
// Current user: /v1/me
// ============================================================

func getMeHandler(dir *service.Directory, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/me")
		defer span.End()

		writeOutcome(w, r, logger, dir.CurrentUser(ctx, SessionFromContext(ctx)), http.StatusOK)
	}
}

func updateMeHandler(dir *service.Directory, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/me")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, dir.UpdateCurrentUser(ctx, SessionFromContext(ctx), fields), http.StatusOK)
	}
}

// ============================================================
// Workspace: /v1/workspace
// ============================================================

func getWorkspaceHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/workspace")
		defer span.End()

		writeOutcome(w, r, logger, svc.Current(ctx, SessionFromContext(ctx)), http.StatusOK)
	}
}

func updateWorkspaceHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/workspace")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Update(ctx, SessionFromContext(ctx), fields), http.StatusOK)
	}
}

func workspaceUsersHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/workspace/users")
		defer span.End()

		limit := defaultWorkspaceUserLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if l, err := strconv.Atoi(v); err == nil && l > 0 {
				limit = l
			}
		}
		writePage(w, r, logger, svc.Users(ctx, SessionFromContext(ctx), limit))
	}
}

// ============================================================
// Sidebar views: /v1/views
// ============================================================

func listViewsHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/views")
		defer span.End()

		writeOutcome(w, r, logger, svc.Views(ctx, SessionFromContext(ctx)), http.StatusOK)
	}
}

func createViewHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/views")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.CreateView(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func updateViewHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/views/{viewId}")
		defer span.End()

		if _, ok := int64Param(w, r, "viewId"); !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.UpdateView(ctx, SessionFromContext(ctx), chi.URLParam(r, "viewId"), fields), http.StatusOK)
	}
}

func deleteViewHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/views/{viewId}")
		defer span.End()

		if _, ok := int64Param(w, r, "viewId"); !ok {
			return
		}
		writeOutcome(w, r, logger, svc.DeleteView(ctx, SessionFromContext(ctx), chi.URLParam(r, "viewId")), http.StatusOK)
	}
}

// ============================================================
// Deals: /v1/deals
// ============================================================

func createDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/deals")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.CreateDeal(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func getDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/deals/{dealId}")
		defer span.End()

		id, ok := uuidParam(w, r, "dealId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Deal(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updateDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/deals/{dealId}")
		defer span.End()

		id, ok := uuidParam(w, r, "dealId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.UpdateDeal(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deleteDealHandler(svc *service.WorkspaceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/deals/{dealId}")
		defer span.End()

		id, ok := uuidParam(w, r, "dealId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.DeleteDeal(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}
