package crmapi

import (
	"context"
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Opportunities groups the opportunity endpoints.
type Opportunities struct{ c *Client }

// Opportunities returns the opportunity endpoints.
func (c *Client) Opportunities() *Opportunities { return &Opportunities{c: c} }

func (o *Opportunities) List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Opportunity] {
	path := withPage("workspaces/"+seg(workspaceID)+"/opportunities", page)
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodGet, path, nil)
}

// ForUser lists the opportunities owned by a user.
func (o *Opportunities) ForUser(ctx context.Context, sess *domain.Session, userID string, page domain.PageRequest) domain.Envelope[domain.Opportunity] {
	path := withPage("users/"+seg(userID)+"/opportunities", page)
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodGet, path, nil)
}

func (o *Opportunities) Get(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodGet, "opportunities/"+seg(opportunityID), nil)
}

func (o *Opportunities) Details(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodGet, "opportunities/"+seg(opportunityID)+"/details", nil)
}

func (o *Opportunities) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodPost, "opportunities/", fields)
}

func (o *Opportunities) Update(ctx context.Context, sess *domain.Session, opportunityID string, fields domain.Fields) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodPatch, "opportunities/"+seg(opportunityID)+"/", fields)
}

func (o *Opportunities) Delete(ctx context.Context, sess *domain.Session, opportunityID string) domain.Envelope[domain.Opportunity] {
	return Do[domain.Opportunity](ctx, o.c, sess, http.MethodDelete, "opportunities/"+seg(opportunityID), nil)
}

// Notes returns the opportunity note endpoints.
func (o *Opportunities) Notes() *Notes { return &Notes{c: o.c, parent: "opportunities"} }

// People groups the person endpoints.
type People struct{ c *Client }

// People returns the person endpoints.
func (c *Client) People() *People { return &People{c: c} }

func (p *People) List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Person] {
	path := withPage("workspaces/"+seg(workspaceID)+"/people", page)
	return Do[domain.Person](ctx, p.c, sess, http.MethodGet, path, nil)
}

func (p *People) Get(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person] {
	return Do[domain.Person](ctx, p.c, sess, http.MethodGet, "people/"+seg(personID), nil)
}

func (p *People) Details(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person] {
	return Do[domain.Person](ctx, p.c, sess, http.MethodGet, "people/"+seg(personID)+"/details", nil)
}

func (p *People) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Person] {
	return Do[domain.Person](ctx, p.c, sess, http.MethodPost, "people/", fields)
}

func (p *People) Update(ctx context.Context, sess *domain.Session, personID string, fields domain.Fields) domain.Envelope[domain.Person] {
	return Do[domain.Person](ctx, p.c, sess, http.MethodPatch, "people/"+seg(personID)+"/", fields)
}

func (p *People) Delete(ctx context.Context, sess *domain.Session, personID string) domain.Envelope[domain.Person] {
	return Do[domain.Person](ctx, p.c, sess, http.MethodDelete, "people/"+seg(personID), nil)
}

// Notes returns the person note endpoints.
func (p *People) Notes() *Notes { return &Notes{c: p.c, parent: "people"} }
