package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/google/uuid"
)

// TaskService exposes the owner-scoped task operations. Every call takes the
// owner identifier resolved by the authorization gate; the repository repeats
// the owner predicate inside each statement, so the scope holds even if a
// caller bypasses this layer.
type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// validTaskID reports whether id is a canonical UUID. Identifier format is
// checked here, once, before any store access; uuid.Parse alone also accepts
// braced and URN forms, which we do not.
func validTaskID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// List returns all tasks owned by ownerID, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	result, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Create persists a new task for ownerID. The identifier, owner binding, and
// timestamps are server-assigned.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	v := validation.New()
	v.CheckTitle(title)
	v.CheckDescription(description)
	if err := v.Err(); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Update rewrites title and description of an owned task. A malformed id is
// rejected with common.ErrorInvalidID before the store is queried; a task
// that does not exist or belongs to someone else is common.ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID, title, description string) (*models.Task, error) {
	if !validTaskID(taskID) {
		return nil, common.ErrorInvalidID
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	v := validation.New()
	v.CheckTitle(title)
	v.CheckDescription(description)
	if err := v.Err(); err != nil {
		return nil, err
	}

	task, err := s.repo.Update(ctx, taskID, ownerID, title, description)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Delete permanently removes an owned task, with the same identifier and
// not-found semantics as Update.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if !validTaskID(taskID) {
		return common.ErrorInvalidID
	}

	err := s.repo.Delete(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
