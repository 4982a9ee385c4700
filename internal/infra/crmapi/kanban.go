package crmapi

import (
	"context"
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Kanban groups the opportunity board endpoints. Board, Columns and
// BulkMove answer with a bare JSON array, which arrives as the single
// element of the envelope.
type Kanban struct{ c *Client }

// Kanban returns the board endpoints.
func (c *Client) Kanban() *Kanban { return &Kanban{c: c} }

func (k *Kanban) Board(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[[]domain.Opportunity] {
	return Do[[]domain.Opportunity](ctx, k.c, sess, http.MethodGet, "workspaces/"+seg(workspaceID)+"/kanban/", nil)
}

func (k *Kanban) Columns(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[[]domain.KanbanColumn] {
	return Do[[]domain.KanbanColumn](ctx, k.c, sess, http.MethodGet, "workspaces/"+seg(workspaceID)+"/kanban/columns/", nil)
}

// MoveCard moves an opportunity to another stage.
func (k *Kanban) MoveCard(ctx context.Context, sess *domain.Session, opportunityID, stage string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, k.c, sess, http.MethodPatch, "opportunities/"+seg(opportunityID)+"/", domain.Fields{"stage": stage})
}

func (k *Kanban) CreateCard(ctx context.Context, sess *domain.Session, workspaceID string, fields domain.Fields) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, k.c, sess, http.MethodPost, "workspaces/"+seg(workspaceID)+"/kanban/cards/", fields)
}

func (k *Kanban) UpdateCard(ctx context.Context, sess *domain.Session, cardID string, fields domain.Fields) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, k.c, sess, http.MethodPatch, "kanban/cards/"+seg(cardID)+"/", fields)
}

func (k *Kanban) DeleteCard(ctx context.Context, sess *domain.Session, cardID string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, k.c, sess, http.MethodDelete, "kanban/cards/"+seg(cardID)+"/", nil)
}

func (k *Kanban) GetCard(ctx context.Context, sess *domain.Session, cardID string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, k.c, sess, http.MethodGet, "kanban/cards/"+seg(cardID)+"/", nil)
}

func (k *Kanban) BulkMove(ctx context.Context, sess *domain.Session, moves []domain.StageMove) domain.Envelope[[]domain.Opportunity] {
	return Do[[]domain.Opportunity](ctx, k.c, sess, http.MethodPatch, "kanban/cards/bulk/", map[string]any{"updates": moves})
}

// ReorderColumn sets the card order of one column.
func (k *Kanban) ReorderColumn(ctx context.Context, sess *domain.Session, columnID string, cardIDs []string) domain.Envelope[domain.ReorderResult] {
	return Do[domain.ReorderResult](ctx, k.c, sess, http.MethodPatch, "kanban/columns/"+seg(columnID)+"/reorder/", map[string]any{"cardIds": cardIDs})
}

// Views groups the sidebar view endpoints.
type Views struct{ c *Client }

// Views returns the sidebar view endpoints.
func (c *Client) Views() *Views { return &Views{c: c} }

// ForUser returns the user's views grouped by sidebar section.
func (v *Views) ForUser(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.SidebarSections] {
	return Do[domain.SidebarSections](ctx, v.c, sess, http.MethodGet, "users/"+seg(userID)+"/views/", nil)
}

func (v *Views) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.SidebarView] {
	return Do[domain.SidebarView](ctx, v.c, sess, http.MethodPost, "views/", fields)
}

func (v *Views) Update(ctx context.Context, sess *domain.Session, viewID string, fields domain.Fields) domain.Envelope[domain.SidebarView] {
	return Do[domain.SidebarView](ctx, v.c, sess, http.MethodPatch, "views/"+seg(viewID)+"/", fields)
}

func (v *Views) Delete(ctx context.Context, sess *domain.Session, viewID string) domain.Envelope[domain.SidebarView] {
	return Do[domain.SidebarView](ctx, v.c, sess, http.MethodDelete, "views/"+seg(viewID)+"/", nil)
}
