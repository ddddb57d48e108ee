package catalog

import (
	"study_portal_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	e.Load([]model.Material{
		{ID: 3, Title: "Thermo notes", Type: model.TypeNotes, IsApproved: true, Tags: []string{"mech"}},
		{ID: 2, Title: "DBMS PYQ 2023", Type: model.TypePYQ, IsApproved: true},
		{ID: 1, Title: "Pending upload", Type: model.TypeAssignment, UploaderEmail: "student@sppu.com"},
	})
	return e
}

func TestEngine_AddPrependsAndAssignsID(t *testing.T) {
	e := newTestEngine(t)

	added, err := e.Add(model.Material{Title: "Fresh", Type: model.TypeModelPaper})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), added.ID)
	assert.False(t, added.UploadedAt.IsZero())

	all := e.All()
	require.Len(t, all, 4)
	assert.Equal(t, added.ID, all[0].ID)
	assert.Equal(t, "Fresh", all[0].Title)
}

func TestEngine_AddRejectsDuplicateID(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Add(model.Material{ID: 2, Title: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 3, e.Len())
}

func TestEngine_AddWithExplicitIDAdvancesSequence(t *testing.T) {
	e := NewEngine()

	_, err := e.Add(model.Material{ID: 10})
	require.NoError(t, err)
	next, err := e.Add(model.Material{})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), next.ID)
}

func TestEngine_UpdateOnlyTouchesMutableFields(t *testing.T) {
	e := newTestEngine(t)
	title := "Thermodynamics unit 1"
	desc := "Laws of thermodynamics"
	tags := []string{"mech", "unit-1"}
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	updated, err := e.Update(3, Patch{Title: &title, Description: &desc, Tags: &tags, UploadedAt: &when})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, []string{"mech", "unit-1"}, updated.Tags)
	assert.Equal(t, when, updated.UploadedAt)
	assert.Equal(t, model.TypeNotes, updated.Type)
	assert.Equal(t, uint64(3), updated.ID)

	// 修改调用方切片不影响已存储的记录
	tags[0] = "changed"
	got, ok := e.Get(3)
	require.True(t, ok)
	assert.Equal(t, "mech", got.Tags[0])
}

func TestEngine_MissingIDLeavesCollectionUnchanged(t *testing.T) {
	e := newTestEngine(t)
	before := e.All()
	title := "x"

	_, err := e.Update(99, Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.SetApproval(99, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.IncrementDownloads(99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Remove(99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, before, e.All())
}

func TestEngine_RemoveThenReadNeverReturnsRecord(t *testing.T) {
	e := newTestEngine(t)

	removed, err := e.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "DBMS PYQ 2023", removed.Title)

	_, ok := e.Get(2)
	assert.False(t, ok)
	for _, m := range e.All() {
		assert.NotEqual(t, uint64(2), m.ID)
	}
	assert.Equal(t, []uint64{3, 1}, ids(e.All()))
}

func TestEngine_SetApprovalMakesRecordVisible(t *testing.T) {
	e := newTestEngine(t)
	student := &Viewer{Email: "other@sppu.com", Role: model.RoleUser}

	assert.NotContains(t, ids(VisibleTo(student, e.All())), uint64(1))

	_, err := e.SetApproval(1, true)
	require.NoError(t, err)
	assert.Contains(t, ids(VisibleTo(student, e.All())), uint64(1))
}

func TestEngine_IncrementDownloads(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 3; i++ {
		_, err := e.IncrementDownloads(2)
		require.NoError(t, err)
	}
	got, _ := e.Get(2)
	assert.Equal(t, 3, got.Downloads)
}

func TestEngine_Stats(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.IncrementDownloads(3)

	s := e.Stats()
	assert.Equal(t, Stats{Total: 3, Pending: 1, Approved: 2, Notes: 1, Downloads: 1}, s)
}

func ids(records []model.Material) []uint64 {
	out := make([]uint64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
