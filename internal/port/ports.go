// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T)
	Delete(ctx context.Context, key string)
}

// UserAPI reads and writes CRM user records.
type UserAPI interface {
	Get(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.User]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.User]
	Update(ctx context.Context, sess *domain.Session, userID string, fields domain.Fields) domain.Envelope[domain.User]
	Delete(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.User]
}

// WorkspaceAPI manages workspaces and lists their members.
type WorkspaceAPI interface {
	Get(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[domain.Workspace]
	Users(ctx context.Context, sess *domain.Session, workspaceID string, limit int) domain.Envelope[domain.User]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Workspace]
	Update(ctx context.Context, sess *domain.Session, workspaceID string, fields domain.Fields) domain.Envelope[domain.Workspace]
	Delete(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[domain.Workspace]
}

// DealAPI manages legacy deals.
type DealAPI interface {
	Get(ctx context.Context, sess *domain.Session, dealID string) domain.Envelope[domain.Deal]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Deal]
	Update(ctx context.Context, sess *domain.Session, dealID string, fields domain.Fields) domain.Envelope[domain.Deal]
	Delete(ctx context.Context, sess *domain.Session, dealID string) domain.Envelope[domain.Deal]
}

// CompanyAPI manages companies.
type CompanyAPI interface {
	List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Company]
	Search(ctx context.Context, sess *domain.Session, workspaceID, name string, page domain.PageRequest) domain.Envelope[domain.Company]
	Get(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company]
	Details(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Company]
	Update(ctx context.Context, sess *domain.Session, companyID string, fields domain.Fields) domain.Envelope[domain.Company]
	Delete(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company]
}

// OpportunityAPI manages opportunities.
type OpportunityAPI interface {
	List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Opportunity]
	ForUser(ctx context.Context, sess *domain.Session, userID string, page domain.PageRequest) domain.Envelope[domain.Opportunity]
	Get(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity]
	Details(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Opportunity]
	Update(ctx context.Context, sess *domain.Session, opportunityID string, fields domain.Fields) domain.Envelope[domain.Opportunity]
	Delete(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity]
}

// PersonAPI manages people.
type PersonAPI interface {
	List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Person]
	Get(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person]
	Details(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Person]
	Update(ctx context.Context, sess *domain.Session, personID string, fields domain.Fields) domain.Envelope[domain.Person]
	Delete(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person]
}

// NoteAPI manages the notes of one kind of parent resource.
type NoteAPI interface {
	List(ctx context.Context, sess *domain.Session, parentID string, page domain.PageRequest) domain.Envelope[domain.Note]
	Get(ctx context.Context, sess *domain.Session, parentID, noteID string) domain.Envelope[domain.Note]
	Create(ctx context.Context, sess *domain.Session, parentID string, fields domain.Fields) domain.Envelope[domain.Note]
	Update(ctx context.Context, sess *domain.Session, parentID, noteID string, fields domain.Fields) domain.Envelope[domain.Note]
	Delete(ctx context.Context, sess *domain.Session, parentID, noteID string) domain.Envelope[domain.Note]
}

// TaskAPI manages tasks.
type TaskAPI interface {
	List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Task]
	ForUser(ctx context.Context, sess *domain.Session, userID string, page domain.PageRequest) domain.Envelope[domain.Task]
	Get(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.Task]
	Details(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.TaskDetails]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Task]
	Update(ctx context.Context, sess *domain.Session, taskID string, fields domain.Fields) domain.Envelope[domain.Task]
	Delete(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.Task]
}

// KanbanAPI drives the opportunity board.
type KanbanAPI interface {
	Board(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[[]domain.Opportunity]
	Columns(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[[]domain.KanbanColumn]
	MoveCard(ctx context.Context, sess *domain.Session, opportunityID, stage string) domain.Envelope[domain.Opportunity]
	CreateCard(ctx context.Context, sess *domain.Session, workspaceID string, fields domain.Fields) domain.Envelope[domain.Opportunity]
	UpdateCard(ctx context.Context, sess *domain.Session, cardID string, fields domain.Fields) domain.Envelope[domain.Opportunity]
	DeleteCard(ctx context.Context, sess *domain.Session, cardID string) domain.Envelope[domain.Opportunity]
	GetCard(ctx context.Context, sess *domain.Session, cardID string) domain.Envelope[domain.Opportunity]
	BulkMove(ctx context.Context, sess *domain.Session, moves []domain.StageMove) domain.Envelope[[]domain.Opportunity]
	ReorderColumn(ctx context.Context, sess *domain.Session, columnID string, cardIDs []string) domain.Envelope[domain.ReorderResult]
}

// ViewAPI manages sidebar views.
type ViewAPI interface {
	ForUser(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.SidebarSections]
	Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.SidebarView]
	Update(ctx context.Context, sess *domain.Session, viewID string, fields domain.Fields) domain.Envelope[domain.SidebarView]
	Delete(ctx context.Context, sess *domain.Session, viewID string) domain.Envelope[domain.SidebarView]
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
