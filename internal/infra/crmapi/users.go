package crmapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Users groups the user endpoints. User ids are identity-provider ids.
type Users struct{ c *Client }

// Users returns the user endpoints.
func (c *Client) Users() *Users { return &Users{c: c} }

func (u *Users) Get(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.User] {
	return Do[domain.User](ctx, u.c, sess, http.MethodGet, "users/"+seg(userID), nil)
}

func (u *Users) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.User] {
	return Do[domain.User](ctx, u.c, sess, http.MethodPost, "users/", fields)
}

func (u *Users) Update(ctx context.Context, sess *domain.Session, userID string, fields domain.Fields) domain.Envelope[domain.User] {
	return Do[domain.User](ctx, u.c, sess, http.MethodPatch, "users/"+seg(userID)+"/", fields)
}

func (u *Users) Delete(ctx context.Context, sess *domain.Session, userID string) domain.Envelope[domain.User] {
	return Do[domain.User](ctx, u.c, sess, http.MethodDelete, "users/"+seg(userID), nil)
}

// Workspaces groups the workspace endpoints.
type Workspaces struct{ c *Client }

// Workspaces returns the workspace endpoints.
func (c *Client) Workspaces() *Workspaces { return &Workspaces{c: c} }

func (w *Workspaces) Get(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[domain.Workspace] {
	return Do[domain.Workspace](ctx, w.c, sess, http.MethodGet, "workspaces/"+seg(workspaceID)+"/", nil)
}

// Users lists the members of a workspace. A positive limit caps the page
// size.
func (w *Workspaces) Users(ctx context.Context, sess *domain.Session, workspaceID string, limit int) domain.Envelope[domain.User] {
	path := "workspaces/" + seg(workspaceID) + "/users/"
	if limit > 0 {
		path = withQuery(path, url.Values{"page_size": {strconv.Itoa(limit)}})
	}
	return Do[domain.User](ctx, w.c, sess, http.MethodGet, path, nil)
}

func (w *Workspaces) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Workspace] {
	return Do[domain.Workspace](ctx, w.c, sess, http.MethodPost, "workspaces/", fields)
}

func (w *Workspaces) Update(ctx context.Context, sess *domain.Session, workspaceID string, fields domain.Fields) domain.Envelope[domain.Workspace] {
	return Do[domain.Workspace](ctx, w.c, sess, http.MethodPatch, "workspaces/"+seg(workspaceID)+"/", fields)
}

func (w *Workspaces) Delete(ctx context.Context, sess *domain.Session, workspaceID string) domain.Envelope[domain.Workspace] {
	return Do[domain.Workspace](ctx, w.c, sess, http.MethodDelete, "workspaces/"+seg(workspaceID)+"/", nil)
}

// Deals groups the legacy deal endpoints.
type Deals struct{ c *Client }

// Deals returns the deal endpoints.
func (c *Client) Deals() *Deals { return &Deals{c: c} }

func (d *Deals) Get(ctx context.Context, sess *domain.Session, dealID string) domain.Envelope[domain.Deal] {
	return Do[domain.Deal](ctx, d.c, sess, http.MethodGet, "deals/"+seg(dealID), nil)
}

func (d *Deals) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Deal] {
	return Do[domain.Deal](ctx, d.c, sess, http.MethodPost, "deals/", fields)
}

func (d *Deals) Update(ctx context.Context, sess *domain.Session, dealID string, fields domain.Fields) domain.Envelope[domain.Deal] {
	return Do[domain.Deal](ctx, d.c, sess, http.MethodPatch, "deals/"+seg(dealID), fields)
}

func (d *Deals) Delete(ctx context.Context, sess *domain.Session, dealID string) domain.Envelope[domain.Deal] {
	return Do[domain.Deal](ctx, d.c, sess, http.MethodDelete, "deals/"+seg(dealID), nil)
}
