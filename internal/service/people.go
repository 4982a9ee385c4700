package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PersonService holds the person actions.
type PersonService struct {
	base
	people port.PersonAPI
}

// NewPersonService creates a new person service.
func NewPersonService(people port.PersonAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *PersonService {
	return &PersonService{base: base{dir: dir, metrics: metrics, logger: logger}, people: people}
}

func (s *PersonService) List(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.List")
	defer span.End()

	req = req.Defaulted()
	ws, kind := s.workspace(ctx, sess, "list_people")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.Person](kind)
	}
	return pageOf(s.base, "list_people", s.people.List(ctx, sess, ws, req), req.PageSize)
}

func (s *PersonService) Details(ctx context.Context, sess *domain.Session, personID string) domain.Outcome[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.Details")
	defer span.End()
	span.SetAttributes(attribute.String("person.id", personID))

	return outcomeOf(s.base, "person_details", s.people.Details(ctx, sess, personID))
}

// Create creates a person in the caller's workspace. name is required.
func (s *PersonService) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.Create")
	defer span.End()

	if err := requireText(fields, "name"); err != nil {
		s.failed("create_person", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Person](domain.KindValidation)
	}
	ws, kind := s.workspace(ctx, sess, "create_person")
	if kind != domain.KindNone {
		return domain.Fail[domain.Person](kind)
	}
	return outcomeOf(s.base, "create_person", s.people.Create(ctx, sess, withWorkspace(fields, ws)))
}

func (s *PersonService) Update(ctx context.Context, sess *domain.Session, personID string, fields domain.Fields) domain.Outcome[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.Update")
	defer span.End()

	if len(fields) == 0 {
		s.failed("update_person", domain.KindValidation)
		return domain.Fail[domain.Person](domain.KindValidation)
	}
	return outcomeOf(s.base, "update_person", s.people.Update(ctx, sess, personID, fields))
}

func (s *PersonService) Delete(ctx context.Context, sess *domain.Session, personID string) domain.Outcome[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.Delete")
	defer span.End()

	return outcomeOf(s.base, "delete_person", s.people.Delete(ctx, sess, personID))
}

// DetachFromCompany removes companyID (numeric) from the person's company
// list.
func (s *PersonService) DetachFromCompany(ctx context.Context, sess *domain.Session, person domain.Person, companyID int64) domain.Outcome[domain.Person] {
	ctx, span := tracer.Start(ctx, "PersonService.DetachFromCompany")
	defer span.End()
	span.SetAttributes(attribute.String("person.id", person.UUID), attribute.Int64("company.id", companyID))

	fields := domain.Fields{"companies": domain.WithoutCompany(person.Companies, companyID)}
	return outcomeOf(s.base, "detach_person", s.people.Update(ctx, sess, person.UUID, fields))
}
