package crmapi

import (
	"context"
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// Tasks groups the task endpoints.
type Tasks struct{ c *Client }

// Tasks returns the task endpoints.
func (c *Client) Tasks() *Tasks { return &Tasks{c: c} }

func (t *Tasks) List(ctx context.Context, sess *domain.Session, workspaceID string, page domain.PageRequest) domain.Envelope[domain.Task] {
	path := withPage("workspaces/"+seg(workspaceID)+"/tasks", page)
	return Do[domain.Task](ctx, t.c, sess, http.MethodGet, path, nil)
}

// ForUser lists the tasks assigned to a user.
func (t *Tasks) ForUser(ctx context.Context, sess *domain.Session, userID string, page domain.PageRequest) domain.Envelope[domain.Task] {
	path := withPage("users/"+seg(userID)+"/tasks", page)
	return Do[domain.Task](ctx, t.c, sess, http.MethodGet, path, nil)
}

func (t *Tasks) Get(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.Task] {
	return Do[domain.Task](ctx, t.c, sess, http.MethodGet, "tasks/"+seg(taskID), nil)
}

func (t *Tasks) Details(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.TaskDetails] {
	return Do[domain.TaskDetails](ctx, t.c, sess, http.MethodGet, "tasks/"+seg(taskID)+"/details", nil)
}

func (t *Tasks) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Envelope[domain.Task] {
	return Do[domain.Task](ctx, t.c, sess, http.MethodPost, "tasks/", fields)
}

func (t *Tasks) Update(ctx context.Context, sess *domain.Session, taskID string, fields domain.Fields) domain.Envelope[domain.Task] {
	return Do[domain.Task](ctx, t.c, sess, http.MethodPatch, "tasks/"+seg(taskID)+"/", fields)
}

func (t *Tasks) Delete(ctx context.Context, sess *domain.Session, taskID string) domain.Envelope[domain.Task] {
	return Do[domain.Task](ctx, t.c, sess, http.MethodDelete, "tasks/"+seg(taskID), nil)
}
