package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.uber.org/zap"
)

// NoteParent names the resource a note hangs off.
type NoteParent string

const (
	NotesOfCompany     NoteParent = "companies"
	NotesOfPerson      NoteParent = "people"
	NotesOfOpportunity NoteParent = "opportunities"
)

// NoteService holds the note actions of all parent resources.
type NoteService struct {
	base
	apis map[NoteParent]port.NoteAPI
}

// NewNoteService creates a note service. apis maps each supported parent
// to its note endpoints.
func NewNoteService(apis map[NoteParent]port.NoteAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *NoteService {
	return &NoteService{base: base{dir: dir, metrics: metrics, logger: logger}, apis: apis}
}

func (s *NoteService) api(parent NoteParent, action string) (port.NoteAPI, bool) {
	api, ok := s.apis[parent]
	if !ok {
		s.failed(action, domain.KindValidation, zap.String("parent", string(parent)))
	}
	return api, ok
}

func (s *NoteService) List(ctx context.Context, sess *domain.Session, parent NoteParent, parentID string, req domain.PageRequest) domain.Page[domain.Note] {
	ctx, span := tracer.Start(ctx, "NoteService.List")
	defer span.End()

	api, ok := s.api(parent, "list_notes")
	if !ok {
		return domain.EmptyPage[domain.Note](domain.KindValidation)
	}
	req = req.Defaulted()
	return pageOf(s.base, "list_notes", api.List(ctx, sess, parentID, req), req.PageSize)
}

func (s *NoteService) Get(ctx context.Context, sess *domain.Session, parent NoteParent, parentID, noteID string) domain.Outcome[domain.Note] {
	ctx, span := tracer.Start(ctx, "NoteService.Get")
	defer span.End()

	api, ok := s.api(parent, "get_note")
	if !ok {
		return domain.Fail[domain.Note](domain.KindValidation)
	}
	return outcomeOf(s.base, "get_note", api.Get(ctx, sess, parentID, noteID))
}

// Create adds a note. content is required.
func (s *NoteService) Create(ctx context.Context, sess *domain.Session, parent NoteParent, parentID string, fields domain.Fields) domain.Outcome[domain.Note] {
	ctx, span := tracer.Start(ctx, "NoteService.Create")
	defer span.End()

	api, ok := s.api(parent, "create_note")
	if !ok {
		return domain.Fail[domain.Note](domain.KindValidation)
	}
	if err := requireText(fields, "content"); err != nil {
		s.failed("create_note", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Note](domain.KindValidation)
	}
	return outcomeOf(s.base, "create_note", api.Create(ctx, sess, parentID, fields))
}

func (s *NoteService) Update(ctx context.Context, sess *domain.Session, parent NoteParent, parentID, noteID string, fields domain.Fields) domain.Outcome[domain.Note] {
	ctx, span := tracer.Start(ctx, "NoteService.Update")
	defer span.End()

	api, ok := s.api(parent, "update_note")
	if !ok {
		return domain.Fail[domain.Note](domain.KindValidation)
	}
	return outcomeOf(s.base, "update_note", api.Update(ctx, sess, parentID, noteID, fields))
}

func (s *NoteService) Delete(ctx context.Context, sess *domain.Session, parent NoteParent, parentID, noteID string) domain.Outcome[domain.Note] {
	ctx, span := tracer.Start(ctx, "NoteService.Delete")
	defer span.End()

	api, ok := s.api(parent, "delete_note")
	if !ok {
		return domain.Fail[domain.Note](domain.KindValidation)
	}
	return outcomeOf(s.base, "delete_note", api.Delete(ctx, sess, parentID, noteID))
}
