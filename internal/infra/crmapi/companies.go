package crmapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Companies groups the company endpoints.
type Companies struct{ c *Client }

// Companies returns the company endpoints.
func (c *Client) Companies() *Companies { return &Companies{c: c} }

func (co *Companies) List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Company] {
	path := withPage("workspaces/"+seg(workspaceID)+"/companies", page)
	return Do[domain.Company](ctx, co.c, sess, http.MethodGet, path, nil)
}

// Search filters a workspace's companies by name.
func (co *Companies) Search(ctx context.Context, sess *domain.Session, workspaceID, name string, page domain.PageRequest) domain.Envelope[domain.Company] {
	path := withQuery("workspaces/"+seg(workspaceID)+"/companies/", url.Values{"name": {name}})
	return Do[domain.Company](ctx, co.c, sess, http.MethodGet, withPage(path, page), nil)
}

func (co *Companies) Get(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company] {
	return Do[domain.Company](ctx, co.c, sess, http.MethodGet, "companies/"+seg(companyID), nil)
}

// Details returns the company with owners, opportunities and people.
func (co *Companies) Details(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company] {
	return Do[domain.Company](ctx, co.c, sess, http.MethodGet, "companies/"+seg(companyID)+"/details", nil)
}

func (co *Companies) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Company] {
	return Do[domain.Company](ctx, co.c, sess, http.MethodPost, "companies/", fields)
}

func (co *Companies) Update(ctx context.Context, sess *domain.Session, companyID string, fields domain.Fields) domain.Envelope[domain.Company] {
	return Do[domain.Company](ctx, co.c, sess, http.MethodPatch, "companies/"+seg(companyID)+"/", fields)
}

func (co *Companies) Delete(ctx context.Context, sess *domain.Session, companyID string) domain.Envelope[domain.Company] {
	return Do[domain.Company](ctx, co.c, sess, http.MethodDelete, "companies/"+seg(companyID), nil)
}

// Notes returns the company note endpoints.
func (co *Companies) Notes() *Notes { return &Notes{c: co.c} }
