package repository

import (
	"fmt"
	"study_portal_backend/internal/model"
	"study_portal_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	u := &model.User{Email: "student@sppu.com", Name: "Student", Password: "x", Role: model.RoleUser}
	require.NoError(t, repo.Create(u))
	assert.NotZero(t, u.ID)

	found, err := repo.FindByEmail("Student@SPPU.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.FindByEmail("nobody@sppu.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateRole(u.ID, model.RoleAdmin))
	require.NoError(t, repo.UpdateTheme(u.ID, model.ThemeDark))
	found, err = repo.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, found.Role)
	assert.Equal(t, model.ThemeDark, found.Theme)

	dup := &model.User{Email: "student@sppu.com", Name: "Dup", Password: "x"}
	assert.Error(t, repo.Create(dup))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestForumRepositoryNewestFirst(t *testing.T) {
	repo := NewForumRepository(newTestDB(t))
	base := time.Now()

	for i, title := range []string{"first", "second", "third"} {
		p := &model.ForumPost{Title: title, Content: "c"}
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(p))
		assert.Len(t, p.ID, 36)
	}

	posts, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "first", posts[2].Title)

	posts, err = repo.List(2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	got, err := repo.FindByID(posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "third", got.Title)
}

func TestTaskRepository(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	due := time.Now().Add(48 * time.Hour)

	a := &model.StudyTask{UserID: 1, Title: "Revise DBMS", Subject: "DBMS", DueDate: due}
	b := &model.StudyTask{UserID: 1, Title: "Solve PYQ", Subject: "Maths", DueDate: due.Add(-24 * time.Hour)}
	other := &model.StudyTask{UserID: 2, Title: "Someone else", DueDate: due}
	for _, task := range []*model.StudyTask{a, b, other} {
		require.NoError(t, repo.Create(task))
	}

	tasks, err := repo.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Solve PYQ", tasks[0].Title)

	_, err = repo.FindByIDAndUser(other.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.SetCompleted(b.ID, true))
	counts, err := repo.CountByUser(1)
	require.NoError(t, err)
	assert.Equal(t, TaskCounts{Pending: 1, Completed: 1}, counts)

	tasks, err = repo.FindByUser(1)
	require.NoError(t, err)
	assert.Equal(t, "Revise DBMS", tasks[0].Title)
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.SeedSettings(db))
	repo := NewSettingRepository(db)

	require.NoError(t, repo.SetMany(map[string]string{
		model.SettingAnnouncementMessage: "Exams start Monday",
		model.SettingAnnouncementActive:  "true",
		"custom":                         "1",
	}))

	values, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "Exams start Monday", values[model.SettingAnnouncementMessage])
	assert.Equal(t, "true", values[model.SettingAnnouncementActive])
	assert.Equal(t, "true", values[model.SettingRegistrationsOpen])
	assert.Equal(t, "1", values["custom"])
}
