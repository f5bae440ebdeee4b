package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID     = "3f2e1d0c-0000-4000-8000-000000000001"
	someTaskID  = "9a8b7c6d-0000-4000-8000-000000000002"
	otherTaskID = "9a8b7c6d-0000-4000-8000-000000000003"
)

type fakeTasksRepo struct {
	created *models.Task

	listOut []*models.Task
	listErr error

	updateCalled bool
	updateErr    error

	deleteCalled bool
	deleteErr    error
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.created = task
	task.ID = someTaskID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	return task, nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, owner string) ([]*models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, id, owner, title, description string) (*models.Task, error) {
	f.updateCalled = true
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Task{ID: id, UserID: owner, Title: title, Description: description}, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id, owner string) error {
	f.deleteCalled = true
	return f.deleteErr
}

func TestTaskList_PassesThrough(t *testing.T) {
	repo := &fakeTasksRepo{listOut: []*models.Task{
		{ID: someTaskID, UserID: ownerID, Title: "Newer"},
		{ID: otherTaskID, UserID: ownerID, Title: "Older"},
	}}
	s := NewTaskService(repo)

	got, err := s.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newer", got[0].Title)
}

func TestTaskList_StorageFault(t *testing.T) {
	repo := &fakeTasksRepo{listErr: errors.New("db down")}
	s := NewTaskService(repo)

	_, err := s.List(context.Background(), ownerID)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestTaskCreate_TrimsAndAssignsOwner(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	task, err := s.Create(context.Background(), ownerID, "  Buy milk  ", "  2%  ")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.Equal(t, ownerID, repo.created.UserID)
	assert.NotEmpty(t, task.ID)
}

func TestTaskCreate_EmptyAfterTrim(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
	}{
		{"blank title", "   ", "desc"},
		{"blank description", "Buy milk", "   "},
		{"both blank", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTasksRepo{}
			s := NewTaskService(repo)

			_, err := s.Create(context.Background(), ownerID, tt.title, tt.description)
			var ve *common.ValidationError
			assert.True(t, errors.As(err, &ve))
			assert.Nil(t, repo.created, "invalid input must not reach the repository")
		})
	}
}

func TestTaskUpdate_EmptyDescriptionRejected(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	_, err := s.Update(context.Background(), ownerID, someTaskID, "Buy milk", "   ")
	var ve *common.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.False(t, repo.updateCalled, "invalid input must not reach the repository")
}

func TestTaskUpdate_MalformedIDRejectedBeforeStore(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	badIDs := []string{
		"",
		"123",
		"650c1f1f52dd42f7a1179b34",               // 24-hex id from the legacy store format
		"{9a8b7c6d-0000-4000-8000-000000000002}",
		"9a8b7c6d-0000-4000-8000-00000000000g", // bad charset
	}
	for _, id := range badIDs {
		_, err := s.Update(context.Background(), ownerID, id, "T", "D")
		assert.ErrorIs(t, err, common.ErrorInvalidID, "id %q", id)
	}
	assert.False(t, repo.updateCalled, "store must not be queried for malformed ids")
}

func TestTaskUpdate_NotFoundAndNotOwnedLookAlike(t *testing.T) {
	repo := &fakeTasksRepo{updateErr: common.ErrorNotFound}
	s := NewTaskService(repo)

	_, err := s.Update(context.Background(), ownerID, someTaskID, "T", "D")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskUpdate_KeepsIdentifierAndOwner(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	task, err := s.Update(context.Background(), ownerID, someTaskID, "New title", "New desc")
	require.NoError(t, err)
	assert.Equal(t, someTaskID, task.ID)
	assert.Equal(t, ownerID, task.UserID)
	assert.Equal(t, "New title", task.Title)
}

func TestTaskDelete_MalformedID(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	err := s.Delete(context.Background(), ownerID, "deadbeef")
	assert.ErrorIs(t, err, common.ErrorInvalidID)
	assert.False(t, repo.deleteCalled)
}

func TestTaskDelete_NotFound(t *testing.T) {
	repo := &fakeTasksRepo{deleteErr: common.ErrorNotFound}
	s := NewTaskService(repo)

	err := s.Delete(context.Background(), ownerID, someTaskID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskDelete_Success(t *testing.T) {
	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)

	require.NoError(t, s.Delete(context.Background(), ownerID, someTaskID))
	assert.True(t, repo.deleteCalled)
}
