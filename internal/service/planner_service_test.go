package service

import (
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerService(t *testing.T) {
	planner := NewPlannerService(repository.NewTaskRepository(newTestDB(t)))

	_, err := planner.Create(1, CreateTaskRequest{Title: "Revise DBMS", DueDate: "next week"})
	assert.ErrorIs(t, err, util.ErrInvalidTask)
	_, err = planner.Create(1, CreateTaskRequest{Title: "", DueDate: "2024-05-01"})
	assert.ErrorIs(t, err, util.ErrInvalidTask)

	late, err := planner.Create(1, CreateTaskRequest{Title: "Revise DBMS", Subject: "DBMS", DueDate: "2024-05-10"})
	require.NoError(t, err)
	early, err := planner.Create(1, CreateTaskRequest{Title: "M3 assignment", DueDate: "2024-05-01"})
	require.NoError(t, err)
	_, err = planner.Create(2, CreateTaskRequest{Title: "Someone else", DueDate: "2024-05-01"})
	require.NoError(t, err)

	tasks, err := planner.List(1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, early.ID, tasks[0].ID)

	toggled, err := planner.Toggle(1, early.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	tasks, err = planner.List(1)
	require.NoError(t, err)
	assert.Equal(t, late.ID, tasks[0].ID)

	_, err = planner.Toggle(2, early.ID)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)

	summary, err := planner.Summary(1)
	require.NoError(t, err)
	assert.Equal(t, repository.TaskCounts{Pending: 1, Completed: 1}, summary)
}
