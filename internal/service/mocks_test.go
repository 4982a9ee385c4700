package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/cache"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

func ok[T any](v ...T) domain.Envelope[T] {
	if v == nil {
		v = []T{}
	}
	return domain.Envelope[T]{Success: true, Status: 200, Data: v}
}

func paged[T any](count int, v ...T) domain.Envelope[T] {
	env := ok(v...)
	env.Pagination = &domain.Pagination{Count: count}
	return env
}

type mockUsers struct {
	port.UserAPI
	mu    sync.Mutex
	user  domain.Envelope[domain.User]
	calls int
}

func (m *mockUsers) Get(_ context.Context, _ *domain.Session, _ string) domain.Envelope[domain.User] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.user
}

func (m *mockUsers) Update(_ context.Context, _ *domain.Session, _ string, _ domain.Fields) domain.Envelope[domain.User] {
	return m.user
}

type updateCall struct {
	id     string
	fields domain.Fields
}

type mockCompanies struct {
	port.CompanyAPI
	mu          sync.Mutex
	list        domain.Envelope[domain.Company]
	details     domain.Envelope[domain.Company]
	update      domain.Envelope[domain.Company]
	listedWS    string
	listedPage  domain.PageRequest
	updates     []updateCall
	createdWith domain.Fields
}

func (m *mockCompanies) List(_ context.Context, _ *domain.Session, ws string, p domain.PageRequest) domain.Envelope[domain.Company] {
	m.listedWS, m.listedPage = ws, p
	return m.list
}

func (m *mockCompanies) Search(_ context.Context, _ *domain.Session, ws, _ string, p domain.PageRequest) domain.Envelope[domain.Company] {
	m.listedWS, m.listedPage = ws, p
	return m.list
}

func (m *mockCompanies) Details(_ context.Context, _ *domain.Session, _ string) domain.Envelope[domain.Company] {
	return m.details
}

func (m *mockCompanies) Create(_ context.Context, _ *domain.Session, f domain.Fields) domain.Envelope[domain.Company] {
	m.createdWith = f
	return m.update
}

func (m *mockCompanies) Update(_ context.Context, _ *domain.Session, id string, f domain.Fields) domain.Envelope[domain.Company] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, updateCall{id: id, fields: f})
	return m.update
}

type mockWorkspaces struct {
	port.WorkspaceAPI
	users domain.Envelope[domain.User]
}

func (m *mockWorkspaces) Users(_ context.Context, _ *domain.Session, _ string, _ int) domain.Envelope[domain.User] {
	return m.users
}

type mockOpportunities struct {
	port.OpportunityAPI
	update  domain.Envelope[domain.Opportunity]
	updates []updateCall
	forUser string
}

func (m *mockOpportunities) Update(_ context.Context, _ *domain.Session, id string, f domain.Fields) domain.Envelope[domain.Opportunity] {
	m.updates = append(m.updates, updateCall{id: id, fields: f})
	return m.update
}

func (m *mockOpportunities) ForUser(_ context.Context, _ *domain.Session, userID string, _ domain.PageRequest) domain.Envelope[domain.Opportunity] {
	m.forUser = userID
	return paged[domain.Opportunity](0)
}

type mockPeople struct {
	port.PersonAPI
	update  domain.Envelope[domain.Person]
	updates []updateCall
}

func (m *mockPeople) Update(_ context.Context, _ *domain.Session, id string, f domain.Fields) domain.Envelope[domain.Person] {
	m.updates = append(m.updates, updateCall{id: id, fields: f})
	return m.update
}

type mockKanban struct {
	port.KanbanAPI
	board domain.Envelope[[]domain.Opportunity]
}

func (m *mockKanban) Board(_ context.Context, _ *domain.Session, _ string) domain.Envelope[[]domain.Opportunity] {
	return m.board
}

// --- Fixtures ---

var sess = &domain.Session{UserID: "user_2abc"}

func userWithWorkspace(ws string) domain.Envelope[domain.User] {
	u := domain.User{ID: 1, ClerkID: sess.UserID, FirstName: "Kari"}
	if ws != "" {
		u.Workspace = &domain.WorkspaceRef{UUID: ws, Name: "Nordvik"}
	}
	return ok(u)
}

func newDirectory(users *mockUsers) *service.Directory {
	return service.NewDirectory(users, cache.New[domain.User](time.Minute), observability.NewMetrics(), zap.NewNop())
}
