package service

import (
	"context"
	"slices"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// workspaceUserLimit caps the owner candidates loaded for a company page.
const workspaceUserLimit = 100

// CompanyService holds the company actions.
type CompanyService struct {
	base
	companies  port.CompanyAPI
	workspaces port.WorkspaceAPI
}

// NewCompanyService creates a new company service.
func NewCompanyService(companies port.CompanyAPI, workspaces port.WorkspaceAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		base:       base{dir: dir, metrics: metrics, logger: logger},
		companies:  companies,
		workspaces: workspaces,
	}
}

// List returns one page of the workspace's companies.
func (s *CompanyService) List(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.List")
	defer span.End()

	req = req.Defaulted()
	ws, kind := s.workspace(ctx, sess, "list_companies")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.Company](kind)
	}
	span.SetAttributes(attribute.String("workspace.id", ws))

	return pageOf(s.base, "list_companies", s.companies.List(ctx, sess, ws, req), req.PageSize)
}

// Search returns companies whose name matches query.
func (s *CompanyService) Search(ctx context.Context, sess *domain.Session, query string, req domain.PageRequest) domain.Page[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.Search")
	defer span.End()

	req = req.Defaulted()
	ws, kind := s.workspace(ctx, sess, "search_companies")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.Company](kind)
	}

	return pageOf(s.base, "search_companies", s.companies.Search(ctx, sess, ws, query, req), req.PageSize)
}

// Details returns a company with owners, opportunities and people.
func (s *CompanyService) Details(ctx context.Context, sess *domain.Session, companyID string) domain.Outcome[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.Details")
	defer span.End()
	span.SetAttributes(attribute.String("company.id", companyID))

	return outcomeOf(s.base, "company_details", s.companies.Details(ctx, sess, companyID))
}

// Page loads everything the company detail page shows: the company and the
// workspace users that can become account owners, fetched concurrently.
// A missing user list does not fail the page.
func (s *CompanyService) Page(ctx context.Context, sess *domain.Session, companyID string) domain.Outcome[domain.CompanyPage] {
	ctx, span := tracer.Start(ctx, "CompanyService.Page")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "company_page")
	if kind != domain.KindNone {
		return domain.Fail[domain.CompanyPage](kind)
	}

	var (
		company domain.Outcome[domain.Company]
		users   domain.Envelope[domain.User]
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		company = outcomeOf(s.base, "company_details", s.companies.Details(gCtx, sess, companyID))
		return nil
	})
	g.Go(func() error {
		users = s.workspaces.Users(gCtx, sess, ws, workspaceUserLimit)
		return nil
	})
	_ = g.Wait()

	if !company.OK() {
		return domain.Fail[domain.CompanyPage](company.Kind)
	}
	if company.Value == nil {
		return domain.Fail[domain.CompanyPage](domain.KindNotFound)
	}

	page := domain.CompanyPage{Company: company.Value, WorkspaceUsers: users.Data}
	if !users.Success {
		s.logger.Warn("workspace users unavailable",
			zap.String("workspace_id", ws),
			zap.Int("status", users.Status),
		)
		page.WorkspaceUsers = []domain.User{}
	}
	return domain.Done(page)
}

// Create creates a company in the caller's workspace. name is required.
func (s *CompanyService) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.Create")
	defer span.End()

	if err := requireText(fields, "name"); err != nil {
		s.failed("create_company", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Company](domain.KindValidation)
	}
	ws, kind := s.workspace(ctx, sess, "create_company")
	if kind != domain.KindNone {
		return domain.Fail[domain.Company](kind)
	}

	return outcomeOf(s.base, "create_company", s.companies.Create(ctx, sess, withWorkspace(fields, ws)))
}

// Update patches company fields and returns the server's copy.
func (s *CompanyService) Update(ctx context.Context, sess *domain.Session, companyID string, fields domain.Fields) domain.Outcome[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("company.id", companyID))

	if len(fields) == 0 {
		s.failed("update_company", domain.KindValidation)
		return domain.Fail[domain.Company](domain.KindValidation)
	}
	return outcomeOf(s.base, "update_company", s.companies.Update(ctx, sess, companyID, fields))
}

// UpdateAddress validates form locally and only then patches the address
// fields.
func (s *CompanyService) UpdateAddress(ctx context.Context, sess *domain.Session, companyID string, form domain.AddressForm) domain.Outcome[domain.Company] {
	if err := form.Validate(); err != nil {
		s.failed("update_address", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Company](domain.KindValidation)
	}
	return s.Update(ctx, sess, companyID, form.Fields())
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, sess *domain.Session, companyID string) domain.Outcome[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.Delete")
	defer span.End()

	return outcomeOf(s.base, "delete_company", s.companies.Delete(ctx, sess, companyID))
}

// SetAccountOwners replaces the company's owner list.
func (s *CompanyService) SetAccountOwners(ctx context.Context, sess *domain.Session, companyID string, ownerIDs []int64) domain.Outcome[domain.Company] {
	ctx, span := tracer.Start(ctx, "CompanyService.SetAccountOwners")
	defer span.End()

	if ownerIDs == nil {
		ownerIDs = []int64{}
	}
	env := s.companies.Update(ctx, sess, companyID, domain.Fields{"account_owners": ownerIDs})
	return outcomeOf(s.base, "set_account_owners", env)
}

// AddAccountOwner adds ownerID to the company's owners. Adding an owner
// that is already present changes nothing and sends no update.
func (s *CompanyService) AddAccountOwner(ctx context.Context, sess *domain.Session, companyID string, ownerID int64) domain.Outcome[domain.Company] {
	current := s.Details(ctx, sess, companyID)
	if !current.OK() || current.Value == nil {
		return domain.Fail[domain.Company](orNotFound(current.Kind))
	}

	ids := domain.OwnerIDs(current.Value.AccountOwners)
	if slices.Contains(ids, ownerID) {
		return current
	}
	return s.SetAccountOwners(ctx, sess, companyID, append(ids, ownerID))
}

// RemoveAccountOwner drops ownerID from the company's owners.
func (s *CompanyService) RemoveAccountOwner(ctx context.Context, sess *domain.Session, companyID string, ownerID int64) domain.Outcome[domain.Company] {
	current := s.Details(ctx, sess, companyID)
	if !current.OK() || current.Value == nil {
		return domain.Fail[domain.Company](orNotFound(current.Kind))
	}

	ids := domain.OwnerIDs(current.Value.AccountOwners)
	if !slices.Contains(ids, ownerID) {
		return current
	}
	return s.SetAccountOwners(ctx, sess, companyID, slices.DeleteFunc(ids, func(id int64) bool { return id == ownerID }))
}

func orNotFound(kind domain.ErrorKind) domain.ErrorKind {
	if kind == domain.KindNone {
		return domain.KindNotFound
	}
	return kind
}
