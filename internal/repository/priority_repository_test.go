package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/testutil"
	"gorm.io/gorm"
)

type priorityFixture struct {
	db       *gorm.DB
	repo     *GormPriorityRepository
	owner    *models.Manager
	intruder *models.Manager
	member   *models.TeamMember
}

func newPriorityFixture(t *testing.T) *priorityFixture {
	db := testutil.OpenDB(t)
	owner := testutil.CreateManager(t, db, "owner@example.com")
	intruder := testutil.CreateManager(t, db, "intruder@example.com")
	return &priorityFixture{
		db:       db,
		repo:     NewPriorityRepository(db).(*GormPriorityRepository),
		owner:    owner,
		intruder: intruder,
		member:   testutil.CreateTeamMember(t, db, owner.ID, "Dana", 0),
	}
}

func TestPriorityRepository_CreateAppends(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	first, err := f.repo.Create(ctx, f.member.ID, "Ship v1")
	require.NoError(t, err)
	second, err := f.repo.Create(ctx, f.member.ID, "Write docs")
	require.NoError(t, err)

	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)
	assert.Equal(t, models.PriorityStatusActive, first.Status)
	assert.Nil(t, first.CompletedAt)

	// A different team member starts its own sequence
	other := testutil.CreateTeamMember(t, f.db, f.owner.ID, "Sam", 1)
	third, err := f.repo.Create(ctx, other.ID, "Onboarding")
	require.NoError(t, err)
	assert.Equal(t, 0, third.DisplayOrder)
}

func TestPriorityRepository_CreateAfterDeletingMiddleRow(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	testutil.CreatePriority(t, f.db, f.member.ID, "a", 0)
	middle := testutil.CreatePriority(t, f.db, f.member.ID, "b", 1)
	testutil.CreatePriority(t, f.db, f.member.ID, "c", 2)

	_, err := f.repo.Delete(ctx, f.owner.ID, middle.ID)
	require.NoError(t, err)

	created, err := f.repo.Create(ctx, f.member.ID, "d")
	require.NoError(t, err)
	assert.Equal(t, 3, created.DisplayOrder)
}

func TestPriorityRepository_CreateAfterDeletingLastRow(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	first, err := f.repo.Create(ctx, f.member.ID, "a")
	require.NoError(t, err)
	last, err := f.repo.Create(ctx, f.member.ID, "b")
	require.NoError(t, err)
	require.Equal(t, 1, last.DisplayOrder)

	_, err = f.repo.Delete(ctx, f.owner.ID, last.ID)
	require.NoError(t, err)

	created, err := f.repo.Create(ctx, f.member.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, 2, created.DisplayOrder)

	// Emptying the list does not restart the sequence either
	for _, id := range []uint64{first.ID, created.ID} {
		_, err = f.repo.Delete(ctx, f.owner.ID, id)
		require.NoError(t, err)
	}

	again, err := f.repo.Create(ctx, f.member.ID, "d")
	require.NoError(t, err)
	assert.Equal(t, 3, again.DisplayOrder)

	// Sequences stay per team member
	other := testutil.CreateTeamMember(t, f.db, f.owner.ID, "Sam", 1)
	fresh, err := f.repo.Create(ctx, other.ID, "e")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.DisplayOrder)
}

func TestPriorityRepository_CreateAboveReorderedRows(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	p, err := f.repo.Create(ctx, f.member.ID, "a")
	require.NoError(t, err)

	_, err = f.repo.Reorder(ctx, f.member.ID, map[uint64]int{p.ID: 10})
	require.NoError(t, err)

	created, err := f.repo.Create(ctx, f.member.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, 11, created.DisplayOrder)
}

func TestPriorityRepository_ListOrdering(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	done := testutil.CreatePriority(t, f.db, f.member.ID, "done", 0)
	later := testutil.CreatePriority(t, f.db, f.member.ID, "later", 2)
	sooner := testutil.CreatePriority(t, f.db, f.member.ID, "sooner", 1)

	completed := models.PriorityStatusCompleted
	_, err := f.repo.Update(ctx, f.owner.ID, done.ID, PriorityPatch{Status: &completed})
	require.NoError(t, err)

	priorities, err := f.repo.ListByTeamMember(ctx, f.member.ID)
	require.NoError(t, err)
	require.Len(t, priorities, 3)
	assert.Equal(t, []uint64{sooner.ID, later.ID, done.ID},
		[]uint64{priorities[0].ID, priorities[1].ID, priorities[2].ID})

	empty, err := f.repo.ListByTeamMember(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPriorityRepository_StatusTogglesCompletedAt(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	f.repo.now = func() time.Time { return fixed }

	priority := testutil.CreatePriority(t, f.db, f.member.ID, "Ship v1", 0)

	completed := models.PriorityStatusCompleted
	updated, err := f.repo.Update(ctx, f.owner.ID, priority.ID, PriorityPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, fixed.Equal(*updated.CompletedAt))

	active := models.PriorityStatusActive
	updated, err = f.repo.Update(ctx, f.owner.ID, priority.ID, PriorityPatch{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityStatusActive, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestPriorityRepository_UpdateContentKeepsCompletedAt(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	priority := testutil.CreatePriority(t, f.db, f.member.ID, "Ship v1", 0)
	completed := models.PriorityStatusCompleted
	_, err := f.repo.Update(ctx, f.owner.ID, priority.ID, PriorityPatch{Status: &completed})
	require.NoError(t, err)

	content := "Ship v1.1"
	updated, err := f.repo.Update(ctx, f.owner.ID, priority.ID, PriorityPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Ship v1.1", updated.Content)
	assert.Equal(t, models.PriorityStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestPriorityRepository_UpdateOwnership(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	priority := testutil.CreatePriority(t, f.db, f.member.ID, "Ship v1", 0)

	content := "stolen"
	_, err := f.repo.Update(ctx, f.intruder.ID, priority.ID, PriorityPatch{Content: &content})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = f.repo.Update(ctx, f.owner.ID, priority.ID, PriorityPatch{})
	assert.ErrorIs(t, err, ErrNoChanges)

	reloaded, err := f.repo.FindOwned(ctx, f.owner.ID, priority.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship v1", reloaded.Content)

	_, err = f.repo.FindOwned(ctx, f.intruder.ID, priority.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPriorityRepository_DeleteReturnsPriorRow(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	priority := testutil.CreatePriority(t, f.db, f.member.ID, "Ship v1", 4)

	_, err := f.repo.Delete(ctx, f.intruder.ID, priority.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err := f.repo.Delete(ctx, f.owner.ID, priority.ID)
	require.NoError(t, err)
	assert.Equal(t, priority.ID, deleted.ID)
	assert.Equal(t, "Ship v1", deleted.Content)
	assert.Equal(t, 4, deleted.DisplayOrder)

	_, err = f.repo.Delete(ctx, f.owner.ID, priority.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.Priority{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPriorityRepository_ReorderScopedToTeamMember(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	a := testutil.CreatePriority(t, f.db, f.member.ID, "a", 0)
	b := testutil.CreatePriority(t, f.db, f.member.ID, "b", 1)
	sibling := testutil.CreateTeamMember(t, f.db, f.owner.ID, "Sam", 1)
	elsewhere := testutil.CreatePriority(t, f.db, sibling.ID, "elsewhere", 0)

	result, err := f.repo.Reorder(ctx, f.member.ID, map[uint64]int{
		a.ID:         1,
		b.ID:         0,
		elsewhere.ID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{a.ID, b.ID}, result.Updated)
	assert.Equal(t, []uint64{elsewhere.ID}, result.Skipped)

	priorities, err := f.repo.ListByTeamMember(ctx, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", priorities[0].Content)
	assert.Equal(t, "a", priorities[1].Content)

	moved, err := f.repo.FindOwned(ctx, f.owner.ID, elsewhere.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.DisplayOrder)
}

func TestPriorityRepository_ReorderEmptyMap(t *testing.T) {
	f := newPriorityFixture(t)

	result, err := f.repo.Reorder(context.Background(), f.member.ID, map[uint64]int{})
	require.NoError(t, err)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Skipped)
}

func TestPriorityRepository_VerifyOwnership(t *testing.T) {
	f := newPriorityFixture(t)
	ctx := context.Background()

	priority := testutil.CreatePriority(t, f.db, f.member.ID, "Ship v1", 0)

	ok, err := f.repo.VerifyOwnership(ctx, priority.ID, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.repo.VerifyOwnership(ctx, priority.ID, f.intruder.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.repo.VerifyOwnership(ctx, 9999, f.owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
