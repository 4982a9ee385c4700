package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.uber.org/zap"
)

// KanbanService holds the opportunity board actions.
type KanbanService struct {
	base
	kanban port.KanbanAPI
}

// NewKanbanService creates a new board service.
func NewKanbanService(kanban port.KanbanAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *KanbanService {
	return &KanbanService{base: base{dir: dir, metrics: metrics, logger: logger}, kanban: kanban}
}

// unwrapList flattens an envelope whose single element is the list.
func unwrapList[T any](b base, action string, env domain.Envelope[[]T]) domain.Outcome[[]T] {
	res := outcomeOf(b, action, env)
	if !res.OK() {
		return domain.Fail[[]T](res.Kind)
	}
	if res.Value == nil || *res.Value == nil {
		return domain.Done([]T{})
	}
	return res
}

// Board returns all cards of the caller's workspace board.
func (s *KanbanService) Board(ctx context.Context, sess *domain.Session) domain.Outcome[[]domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.Board")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "kanban_board")
	if kind != domain.KindNone {
		return domain.Fail[[]domain.Opportunity](kind)
	}
	return unwrapList(s.base, "kanban_board", s.kanban.Board(ctx, sess, ws))
}

// Columns returns the stage columns of the caller's workspace board.
func (s *KanbanService) Columns(ctx context.Context, sess *domain.Session) domain.Outcome[[]domain.KanbanColumn] {
	ctx, span := tracer.Start(ctx, "KanbanService.Columns")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "kanban_columns")
	if kind != domain.KindNone {
		return domain.Fail[[]domain.KanbanColumn](kind)
	}
	return unwrapList(s.base, "kanban_columns", s.kanban.Columns(ctx, sess, ws))
}

// Move moves one card to a stage.
func (s *KanbanService) Move(ctx context.Context, sess *domain.Session, opportunityID, stage string) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.Move")
	defer span.End()

	if stage == "" {
		s.failed("kanban_move", domain.KindValidation)
		return domain.Fail[domain.Opportunity](domain.KindValidation)
	}
	return outcomeOf(s.base, "kanban_move", s.kanban.MoveCard(ctx, sess, opportunityID, stage))
}

// BulkMove moves several cards in one request.
func (s *KanbanService) BulkMove(ctx context.Context, sess *domain.Session, moves []domain.StageMove) domain.Outcome[[]domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.BulkMove")
	defer span.End()

	if len(moves) == 0 {
		return domain.Done([]domain.Opportunity{})
	}
	for _, m := range moves {
		if m.ID == "" || m.Stage == "" {
			s.failed("kanban_bulk_move", domain.KindValidation, zap.String("card", m.ID))
			return domain.Fail[[]domain.Opportunity](domain.KindValidation)
		}
	}
	return unwrapList(s.base, "kanban_bulk_move", s.kanban.BulkMove(ctx, sess, moves))
}

// Reorder sets the card order of a column.
func (s *KanbanService) Reorder(ctx context.Context, sess *domain.Session, columnID string, cardIDs []string) domain.Outcome[domain.ReorderResult] {
	ctx, span := tracer.Start(ctx, "KanbanService.Reorder")
	defer span.End()

	if cardIDs == nil {
		cardIDs = []string{}
	}
	return outcomeOf(s.base, "kanban_reorder", s.kanban.ReorderColumn(ctx, sess, columnID, cardIDs))
}

// CreateCard creates a card on the caller's workspace board.
func (s *KanbanService) CreateCard(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.CreateCard")
	defer span.End()

	if err := requireText(fields, "name"); err != nil {
		s.failed("kanban_create", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Opportunity](domain.KindValidation)
	}
	ws, kind := s.workspace(ctx, sess, "kanban_create")
	if kind != domain.KindNone {
		return domain.Fail[domain.Opportunity](kind)
	}
	return outcomeOf(s.base, "kanban_create", s.kanban.CreateCard(ctx, sess, ws, fields))
}

func (s *KanbanService) GetCard(ctx context.Context, sess *domain.Session, cardID string) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.GetCard")
	defer span.End()

	return outcomeOf(s.base, "kanban_get", s.kanban.GetCard(ctx, sess, cardID))
}

func (s *KanbanService) UpdateCard(ctx context.Context, sess *domain.Session, cardID string, fields domain.Fields) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.UpdateCard")
	defer span.End()

	return outcomeOf(s.base, "kanban_update", s.kanban.UpdateCard(ctx, sess, cardID, fields))
}

func (s *KanbanService) DeleteCard(ctx context.Context, sess *domain.Session, cardID string) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "KanbanService.DeleteCard")
	defer span.End()

	return outcomeOf(s.base, "kanban_delete", s.kanban.DeleteCard(ctx, sess, cardID))
}
