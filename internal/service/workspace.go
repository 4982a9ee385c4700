package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.uber.org/zap"
)

// WorkspaceService holds the actions on the caller's workspace, its
// sidebar views and legacy deals.
type WorkspaceService struct {
	base
	workspaces port.WorkspaceAPI
	views      port.ViewAPI
	deals      port.DealAPI
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(workspaces port.WorkspaceAPI, views port.ViewAPI, deals port.DealAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{
		base:       base{dir: dir, metrics: metrics, logger: logger},
		workspaces: workspaces,
		views:      views,
		deals:      deals,
	}
}

// Current returns the caller's workspace.
func (s *WorkspaceService) Current(ctx context.Context, sess *domain.Session) domain.Outcome[domain.Workspace] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.Current")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "current_workspace")
	if kind != domain.KindNone {
		return domain.Fail[domain.Workspace](kind)
	}
	return outcomeOf(s.base, "current_workspace", s.workspaces.Get(ctx, sess, ws))
}

// Users lists the members of the caller's workspace, at most limit of them
// when limit is positive.
func (s *WorkspaceService) Users(ctx context.Context, sess *domain.Session, limit int) domain.Page[domain.User] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.Users")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "workspace_users")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.User](kind)
	}
	pageSize := limit
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return pageOf(s.base, "workspace_users", s.workspaces.Users(ctx, sess, ws, limit), pageSize)
}

// Update patches the caller's workspace.
func (s *WorkspaceService) Update(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Workspace] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.Update")
	defer span.End()

	ws, kind := s.workspace(ctx, sess, "update_workspace")
	if kind != domain.KindNone {
		return domain.Fail[domain.Workspace](kind)
	}
	return outcomeOf(s.base, "update_workspace", s.workspaces.Update(ctx, sess, ws, fields))
}

// Views returns the session user's sidebar views by section.
func (s *WorkspaceService) Views(ctx context.Context, sess *domain.Session) domain.Outcome[domain.SidebarSections] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.Views")
	defer span.End()

	if !sess.Valid() {
		s.failed("list_views", domain.KindUnauthorized)
		return domain.Fail[domain.SidebarSections](domain.KindUnauthorized)
	}
	res := outcomeOf(s.base, "list_views", s.views.ForUser(ctx, sess, sess.UserID))
	if res.OK() && res.Value == nil {
		return domain.Done(domain.SidebarSections{})
	}
	return res
}

// CreateView saves a sidebar view. name and url are required.
func (s *WorkspaceService) CreateView(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.SidebarView] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.CreateView")
	defer span.End()

	for _, key := range []string{"name", "url"} {
		if err := requireText(fields, key); err != nil {
			s.failed("create_view", domain.KindValidation, zap.Error(err))
			return domain.Fail[domain.SidebarView](domain.KindValidation)
		}
	}
	return outcomeOf(s.base, "create_view", s.views.Create(ctx, sess, fields))
}

func (s *WorkspaceService) UpdateView(ctx context.Context, sess *domain.Session, viewID string, fields domain.Fields) domain.Outcome[domain.SidebarView] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.UpdateView")
	defer span.End()

	return outcomeOf(s.base, "update_view", s.views.Update(ctx, sess, viewID, fields))
}

func (s *WorkspaceService) DeleteView(ctx context.Context, sess *domain.Session, viewID string) domain.Outcome[domain.SidebarView] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.DeleteView")
	defer span.End()

	return outcomeOf(s.base, "delete_view", s.views.Delete(ctx, sess, viewID))
}

func (s *WorkspaceService) Deal(ctx context.Context, sess *domain.Session, dealID string) domain.Outcome[domain.Deal] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.Deal")
	defer span.End()

	return outcomeOf(s.base, "get_deal", s.deals.Get(ctx, sess, dealID))
}

func (s *WorkspaceService) CreateDeal(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Deal] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.CreateDeal")
	defer span.End()

	if err := requireText(fields, "name"); err != nil {
		s.failed("create_deal", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Deal](domain.KindValidation)
	}
	return outcomeOf(s.base, "create_deal", s.deals.Create(ctx, sess, fields))
}

func (s *WorkspaceService) UpdateDeal(ctx context.Context, sess *domain.Session, dealID string, fields domain.Fields) domain.Outcome[domain.Deal] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.UpdateDeal")
	defer span.End()

	return outcomeOf(s.base, "update_deal", s.deals.Update(ctx, sess, dealID, fields))
}

func (s *WorkspaceService) DeleteDeal(ctx context.Context, sess *domain.Session, dealID string) domain.Outcome[domain.Deal] {
	ctx, span := tracer.Start(ctx, "WorkspaceService.DeleteDeal")
	defer span.End()

	return outcomeOf(s.base, "delete_deal", s.deals.Delete(ctx, sess, dealID))
}
