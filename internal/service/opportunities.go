package service

import (
	"context"
	"slices"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Stages lists the pipeline stages an opportunity can be moved to.
var Stages = []string{
	domain.StageLead,
	domain.StageQualified,
	domain.StageProposal,
	domain.StageNegotiation,
	domain.StageWon,
	domain.StageLost,
}

// OpportunityService holds the opportunity actions.
type OpportunityService struct {
	base
	opportunities port.OpportunityAPI
}

// NewOpportunityService creates a new opportunity service.
func NewOpportunityService(opportunities port.OpportunityAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *OpportunityService {
	return &OpportunityService{base: base{dir: dir, metrics: metrics, logger: logger}, opportunities: opportunities}
}

func (s *OpportunityService) List(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.List")
	defer span.End()

	req = req.Defaulted()
	ws, kind := s.workspace(ctx, sess, "list_opportunities")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.Opportunity](kind)
	}
	return pageOf(s.base, "list_opportunities", s.opportunities.List(ctx, sess, ws, req), req.PageSize)
}

// Mine lists the opportunities owned by the session user.
func (s *OpportunityService) Mine(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.Mine")
	defer span.End()

	req = req.Defaulted()
	if !sess.Valid() {
		s.failed("my_opportunities", domain.KindUnauthorized)
		return domain.EmptyPage[domain.Opportunity](domain.KindUnauthorized)
	}
	return pageOf(s.base, "my_opportunities", s.opportunities.ForUser(ctx, sess, sess.UserID, req), req.PageSize)
}

func (s *OpportunityService) Details(ctx context.Context, sess *domain.Session, opportunityID string) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.Details")
	defer span.End()
	span.SetAttributes(attribute.String("opportunity.id", opportunityID))

	return outcomeOf(s.base, "opportunity_details", s.opportunities.Details(ctx, sess, opportunityID))
}

// Create creates an opportunity in the caller's workspace. name is
// required.
func (s *OpportunityService) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.Create")
	defer span.End()

	if err := requireText(fields, "name"); err != nil {
		s.failed("create_opportunity", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Opportunity](domain.KindValidation)
	}
	ws, kind := s.workspace(ctx, sess, "create_opportunity")
	if kind != domain.KindNone {
		return domain.Fail[domain.Opportunity](kind)
	}
	return outcomeOf(s.base, "create_opportunity", s.opportunities.Create(ctx, sess, withWorkspace(fields, ws)))
}

func (s *OpportunityService) Update(ctx context.Context, sess *domain.Session, opportunityID string, fields domain.Fields) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.Update")
	defer span.End()

	if len(fields) == 0 {
		s.failed("update_opportunity", domain.KindValidation)
		return domain.Fail[domain.Opportunity](domain.KindValidation)
	}
	return outcomeOf(s.base, "update_opportunity", s.opportunities.Update(ctx, sess, opportunityID, fields))
}

func (s *OpportunityService) Delete(ctx context.Context, sess *domain.Session, opportunityID string) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.Delete")
	defer span.End()

	return outcomeOf(s.base, "delete_opportunity", s.opportunities.Delete(ctx, sess, opportunityID))
}

// MoveStage moves an opportunity to one of Stages.
func (s *OpportunityService) MoveStage(ctx context.Context, sess *domain.Session, opportunityID, stage string) domain.Outcome[domain.Opportunity] {
	if !slices.Contains(Stages, stage) {
		s.failed("move_stage", domain.KindValidation, zap.String("stage", stage))
		return domain.Fail[domain.Opportunity](domain.KindValidation)
	}
	return s.Update(ctx, sess, opportunityID, domain.Fields{"stage": stage})
}

// DetachFromCompany removes companyID (numeric) from the opportunity's
// company list.
func (s *OpportunityService) DetachFromCompany(ctx context.Context, sess *domain.Session, opp domain.Opportunity, companyID int64) domain.Outcome[domain.Opportunity] {
	ctx, span := tracer.Start(ctx, "OpportunityService.DetachFromCompany")
	defer span.End()
	span.SetAttributes(attribute.String("opportunity.id", opp.UUID), attribute.Int64("company.id", companyID))

	fields := domain.Fields{"companies": domain.WithoutCompany(opp.Companies, companyID)}
	return outcomeOf(s.base, "detach_opportunity", s.opportunities.Update(ctx, sess, opp.UUID, fields))
}
