package crmapi

import (
	"context"
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Notes groups the note endpoints of one parent resource. Company notes
// live on the global "notes" collection, so for them parentID does not
// take part in the path.
type Notes struct {
	c      *Client
	parent string // "opportunities", "people", or "" for the global collection
}

func (n *Notes) base(parentID string) string {
	if n.parent == "" {
		return "notes/"
	}
	return n.parent + "/" + seg(parentID) + "/notes/"
}

func (n *Notes) List(ctx context.Context, sess *domain.Session, parentID string, page domain.PageRequest) domain.Envelope[domain.Note] {
	path := n.base(parentID)
	return Do[domain.Note](ctx, n.c, sess, http.MethodGet, withPage(path[:len(path)-1], page), nil)
}

func (n *Notes) Get(ctx context.Context, sess *domain.Session, parentID, noteID string) domain.Envelope[domain.Note] {
	return Do[domain.Note](ctx, n.c, sess, http.MethodGet, n.base(parentID)+seg(noteID)+"/", nil)
}

func (n *Notes) Create(ctx context.Context, sess *domain.Session, parentID string, fields domain.Fields) domain.Envelope[domain.Note] {
	return Do[domain.Note](ctx, n.c, sess, http.MethodPost, n.base(parentID), fields)
}

func (n *Notes) Update(ctx context.Context, sess *domain.Session, parentID, noteID string, fields domain.Fields) domain.Envelope[domain.Note] {
	return Do[domain.Note](ctx, n.c, sess, http.MethodPatch, n.base(parentID)+seg(noteID)+"/", fields)
}

func (n *Notes) Delete(ctx context.Context, sess *domain.Session, parentID, noteID string) domain.Envelope[domain.Note] {
	return Do[domain.Note](ctx, n.c, sess, http.MethodDelete, n.base(parentID)+seg(noteID)+"/", nil)
}
