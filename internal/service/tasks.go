package service

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"go.uber.org/zap"
)

// TaskService holds the task actions.
type TaskService struct {
	base
	tasks port.TaskAPI
}

// NewTaskService creates a new task service.
func NewTaskService(tasks port.TaskAPI, dir *Directory, metrics *observability.Metrics, logger *zap.Logger) *TaskService {
	return &TaskService{base: base{dir: dir, metrics: metrics, logger: logger}, tasks: tasks}
}

func (s *TaskService) List(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Task] {
	ctx, span := tracer.Start(ctx, "TaskService.List")
	defer span.End()

	req = req.Defaulted()
	ws, kind := s.workspace(ctx, sess, "list_tasks")
	if kind != domain.KindNone {
		return domain.EmptyPage[domain.Task](kind)
	}
	return pageOf(s.base, "list_tasks", s.tasks.List(ctx, sess, ws, req), req.PageSize)
}

// Mine lists the tasks of the session user.
func (s *TaskService) Mine(ctx context.Context, sess *domain.Session, req domain.PageRequest) domain.Page[domain.Task] {
	ctx, span := tracer.Start(ctx, "TaskService.Mine")
	defer span.End()

	req = req.Defaulted()
	if !sess.Valid() {
		s.failed("my_tasks", domain.KindUnauthorized)
		return domain.EmptyPage[domain.Task](domain.KindUnauthorized)
	}
	return pageOf(s.base, "my_tasks", s.tasks.ForUser(ctx, sess, sess.UserID, req), req.PageSize)
}

func (s *TaskService) Details(ctx context.Context, sess *domain.Session, taskID string) domain.Outcome[domain.TaskDetails] {
	ctx, span := tracer.Start(ctx, "TaskService.Details")
	defer span.End()

	return outcomeOf(s.base, "task_details", s.tasks.Details(ctx, sess, taskID))
}

// Create creates a task in the caller's workspace. title is required.
func (s *TaskService) Create(ctx context.Context, sess *domain.Session, fields domain.Fields) domain.Outcome[domain.Task] {
	ctx, span := tracer.Start(ctx, "TaskService.Create")
	defer span.End()

	if err := requireText(fields, "title"); err != nil {
		s.failed("create_task", domain.KindValidation, zap.Error(err))
		return domain.Fail[domain.Task](domain.KindValidation)
	}
	ws, kind := s.workspace(ctx, sess, "create_task")
	if kind != domain.KindNone {
		return domain.Fail[domain.Task](kind)
	}
	return outcomeOf(s.base, "create_task", s.tasks.Create(ctx, sess, withWorkspace(fields, ws)))
}

func (s *TaskService) Update(ctx context.Context, sess *domain.Session, taskID string, fields domain.Fields) domain.Outcome[domain.Task] {
	ctx, span := tracer.Start(ctx, "TaskService.Update")
	defer span.End()

	if len(fields) == 0 {
		s.failed("update_task", domain.KindValidation)
		return domain.Fail[domain.Task](domain.KindValidation)
	}
	return outcomeOf(s.base, "update_task", s.tasks.Update(ctx, sess, taskID, fields))
}

func (s *TaskService) Delete(ctx context.Context, sess *domain.Session, taskID string) domain.Outcome[domain.Task] {
	ctx, span := tracer.Start(ctx, "TaskService.Delete")
	defer span.End()

	return outcomeOf(s.base, "delete_task", s.tasks.Delete(ctx, sess, taskID))
}
