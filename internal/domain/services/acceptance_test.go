package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/mocks"
)

type acceptanceFixture struct {
	entities    *mocks.EntityStore
	acceptances *mocks.AcceptanceStore
	activity    *mocks.ActivityLog
	service     *AcceptanceService
}

func newAcceptanceFixture() *acceptanceFixture {
	f := &acceptanceFixture{
		entities:    mocks.NewEntityStore(),
		acceptances: mocks.NewAcceptanceStore(),
		activity:    mocks.NewActivityLog(),
	}
	f.service = NewAcceptanceService(f.entities, f.acceptances, f.activity, discardLogger())
	return f
}

func (f *acceptanceFixture) createPolicy(t *testing.T, status entities.Status) *entities.Document {
	t.Helper()
	doc := &entities.Document{
		Title:    "Security Policy",
		Category: entities.CategoryPolicy,
		Content:  "lock your screen",
		Version:  entities.InitialVersion,
		Status:   status,
	}
	require.NoError(t, f.entities.CreateDocument(context.Background(), doc))
	return doc
}

func TestAccept(t *testing.T) {
	ctx := context.Background()

	t.Run("records first acceptance with one activity entry", func(t *testing.T) {
		f := newAcceptanceFixture()
		policy := f.createPolicy(t, entities.StatusApproved)

		acceptance, err := f.service.Accept(ctx, 5, policy.ID)
		require.NoError(t, err)
		assert.NotZero(t, acceptance.ID)
		assert.Equal(t, int64(5), acceptance.UserID)
		assert.Equal(t, policy.ID, acceptance.DocumentID)
		assert.False(t, acceptance.AcceptedAt.IsZero())

		accepts := f.activity.ByAction(entities.ActionAccept)
		require.Len(t, accepts, 1)
		assert.Equal(t, policy.Ref(), accepts[0].Entity)
	})

	t.Run("re-accepting returns the existing row and logs nothing new", func(t *testing.T) {
		f := newAcceptanceFixture()
		policy := f.createPolicy(t, entities.StatusApproved)

		first, err := f.service.Accept(ctx, 5, policy.ID)
		require.NoError(t, err)
		second, err := f.service.Accept(ctx, 5, policy.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.AcceptedAt, second.AcceptedAt)
		assert.Len(t, f.activity.ByAction(entities.ActionAccept), 1)
		assert.Len(t, f.acceptances.Acceptances, 1)
	})

	t.Run("different users accept independently", func(t *testing.T) {
		f := newAcceptanceFixture()
		policy := f.createPolicy(t, entities.StatusApproved)

		_, err := f.service.Accept(ctx, 5, policy.ID)
		require.NoError(t, err)
		_, err = f.service.Accept(ctx, 6, policy.ID)
		require.NoError(t, err)

		rows, err := f.service.ListByDocument(ctx, policy.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("unapproved policy cannot be accepted", func(t *testing.T) {
		f := newAcceptanceFixture()
		policy := f.createPolicy(t, entities.StatusPending)

		_, err := f.service.Accept(ctx, 5, policy.ID)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("non-policy document cannot be accepted", func(t *testing.T) {
		f := newAcceptanceFixture()
		doc := &entities.Document{Title: "Plain doc", Status: entities.StatusApproved}
		require.NoError(t, f.entities.CreateDocument(ctx, doc))

		_, err := f.service.Accept(ctx, 5, doc.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("missing document", func(t *testing.T) {
		f := newAcceptanceFixture()
		_, err := f.service.Accept(ctx, 5, 99)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}
