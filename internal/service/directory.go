// Package service holds the domain actions called by the presentation
// layer. Actions never return Go errors: every outcome is a Page or an
// Outcome whose Kind says what went wrong.
package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

const userCacheName = "current_user"

// Directory resolves the CRM user record behind a session.
type Directory struct {
	users   port.UserAPI
	cache   port.Cache[domain.User]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDirectory creates a Directory backed by the given user cache.
func NewDirectory(users port.UserAPI, cache port.Cache[domain.User], metrics *observability.Metrics, logger *zap.Logger) *Directory {
	return &Directory{users: users, cache: cache, metrics: metrics, logger: logger}
}

func cacheKey(sess *domain.Session) string {
	return "user:" + sess.UserID
}

// CurrentUser returns the CRM record of the session user.
func (d *Directory) CurrentUser(ctx context.Context, sess *domain.Session) domain.Outcome[domain.User] {
	if !sess.Valid() {
		return domain.Fail[domain.User](domain.KindUnauthorized)
	}

	ctx, span := tracer.Start(ctx, "Directory.CurrentUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", sess.UserID))

	if u, ok := d.cache.Get(ctx, cacheKey(sess)); ok {
		d.metrics.IncrCacheHit(userCacheName)
		return domain.Done(u)
	}
	d.metrics.IncrCacheMiss(userCacheName)

	env := d.users.Get(ctx, sess, sess.UserID)
	u, ok := env.First()
	if !ok {
		kind := kindOf(env)
		if kind == domain.KindNone {
			kind = domain.KindNotFound
		}
		d.metrics.IncrActionFailure("current_user", kind)
		d.logger.Warn("current user not resolved",
			zap.String("user_id", sess.UserID),
			zap.Int("status", env.Status),
			zap.String("kind", string(kind)),
		)
		return domain.Fail[domain.User](kind)
	}

	d.cache.Set(ctx, cacheKey(sess), u)
	return domain.Done(u)
}

// WorkspaceID returns the uuid of the session user's workspace. A user
// without a workspace yields KindPrecondition.
func (d *Directory) WorkspaceID(ctx context.Context, sess *domain.Session) (string, domain.ErrorKind) {
	res := d.CurrentUser(ctx, sess)
	if !res.OK() {
		return "", res.Kind
	}
	if id := res.Value.WorkspaceID(); id != "" {
		return id, domain.KindNone
	}
	return "", domain.KindPrecondition
}

// UpdateCurrentUser patches the session user's record and drops the cached
// copy.
func (d *Directory) UpdateCurrentUser(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.User] {
	if !sess.Valid() {
		return domain.Fail[domain.User](domain.KindUnauthorized)
	}

	ctx, span := tracer.Start(ctx, "Directory.UpdateCurrentUser")
	defer span.End()

	env := d.users.Update(ctx, sess, sess.UserID, fields)
	d.cache.Delete(ctx, cacheKey(sess))

	b := base{dir: d, metrics: d.metrics, logger: d.logger}
	return outcomeOf(b, "update_user", env)
}
