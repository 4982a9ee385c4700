package service

import (
	"context"
	"net/http"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"

	"go.uber.org/zap"
)

// base carries what every action service needs: the directory to resolve
// the caller's workspace, metrics and a logger.
type base struct {
	dir     *Directory
	metrics *observability.Metrics
	logger  *zap.Logger
}

// workspace resolves the session user's workspace id. On failure the
// returned kind is set and a diagnostic has been logged.
func (b base) workspace(ctx context.Context, sess *domain.Session, action string) (string, domain.ErrorKind) {
	id, kind := b.dir.WorkspaceID(ctx, sess)
	if kind != domain.KindNone {
		b.failed(action, kind, zap.String("reason", "no workspace for session user"))
	}
	return id, kind
}

func (b base) failed(action string, kind domain.ErrorKind, fields ...zap.Field) {
	b.metrics.IncrActionFailure(action, kind)
	b.logger.Warn("action failed",
		append([]zap.Field{zap.String("action", action), zap.String("kind", string(kind))}, fields...)...,
	)
}

// kindOf classifies an unsuccessful envelope.
func kindOf[T any](env domain.Envelope[T]) domain.ErrorKind {
	if env.Success {
		return domain.KindNone
	}
	switch env.Kind {
	case domain.KindRemote, domain.KindNone:
		switch env.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.KindUnauthorized
		case http.StatusNotFound:
			return domain.KindNotFound
		}
		return domain.KindRemote
	}
	return env.Kind
}

// pageOf turns a list envelope into a Page. TotalPages is computed against
// the requested page size.
func pageOf[T any](b base, action string, env domain.Envelope[T], pageSize int) domain.Page[T] {
	if kind := kindOf(env); kind != domain.KindNone {
		b.failed(action, kind, zap.Int("status", env.Status))
		return domain.EmptyPage[T](kind)
	}
	total := env.Count()
	return domain.Page[T]{
		Data:       env.Data,
		TotalCount: total,
		TotalPages: domain.TotalPages(total, pageSize),
	}
}

// outcomeOf unwraps a singular envelope. A successful envelope without
// payload (e.g. 204 on delete) is a success with a nil value.
func outcomeOf[T any](b base, action string, env domain.Envelope[T]) domain.Outcome[T] {
	if kind := kindOf(env); kind != domain.KindNone {
		b.failed(action, kind, zap.Int("status", env.Status))
		return domain.Fail[T](kind)
	}
	if v, ok := env.First(); ok {
		return domain.Done(v)
	}
	return domain.Outcome[T]{}
}

// withWorkspace returns a copy of fields carrying the workspace id, unless
// the caller set one.
func withWorkspace(fields domain.Fields, workspaceID string) domain.Fields {
	out := make(domain.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if _, ok := out["workspace"]; !ok {
		out["workspace"] = workspaceID
	}
	return out
}

// requireText fails with a validation error when fields[key] is not a
// non-empty string.
func requireText(fields domain.Fields, key string) *domain.ErrValidation {
	if s, ok := fields[key].(string); ok && s != "" {
		return nil
	}
	return &domain.ErrValidation{Field: key, Message: "is required"}
}
