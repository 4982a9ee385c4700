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
// Kanban: /v1/kanban
// ============================================================

type bulkMoveRequest struct {
	Updates []domain.StageMove `json:"updates"`
}

type reorderRequest struct {
	CardIDs []string `json:"card_ids"`
}

func kanbanBoardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/kanban")
		defer span.End()

		writeOutcome(w, r, logger, svc.Board(ctx, SessionFromContext(ctx)), http.StatusOK)
	}
}

func kanbanColumnsHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/kanban/columns")
		defer span.End()

		writeOutcome(w, r, logger, svc.Columns(ctx, SessionFromContext(ctx)), http.StatusOK)
	}
}

func reorderColumnHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/kanban/columns/{columnId}/order")
		defer span.End()

		columnID := chi.URLParam(r, "columnId")
		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		span.SetAttributes(attribute.String("kanban.column", columnID), attribute.Int("kanban.cards", len(req.CardIDs)))
		writeOutcome(w, r, logger, svc.Reorder(ctx, SessionFromContext(ctx), columnID, req.CardIDs), http.StatusOK)
	}
}

func createCardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/kanban/cards")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.CreateCard(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func bulkMoveHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/kanban/cards/bulk")
		defer span.End()

		var req bulkMoveRequest
		if !decodeBody(w, r, &req) {
			return
		}
		span.SetAttributes(attribute.Int("kanban.cards", len(req.Updates)))
		writeOutcome(w, r, logger, svc.BulkMove(ctx, SessionFromContext(ctx), req.Updates), http.StatusOK)
	}
}

func getCardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/kanban/cards/{cardId}")
		defer span.End()

		id, ok := uuidParam(w, r, "cardId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.GetCard(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updateCardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/kanban/cards/{cardId}")
		defer span.End()

		id, ok := uuidParam(w, r, "cardId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.UpdateCard(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deleteCardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/kanban/cards/{cardId}")
		defer span.End()

		id, ok := uuidParam(w, r, "cardId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.DeleteCard(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func moveCardHandler(svc *service.KanbanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/kanban/cards/{cardId}/stage")
		defer span.End()

		id, ok := uuidParam(w, r, "cardId")
		if !ok {
			return
		}
		var req stageRequest
		if !decodeBody(w, r, &req) {
			return
		}
		writeOutcome(w, r, logger, svc.Move(ctx, SessionFromContext(ctx), id, req.Stage), http.StatusOK)
	}
}
