package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type workflowFixture struct {
	entities  *mocks.EntityStore
	approvals *mocks.ApprovalStore
	activity  *mocks.ActivityLog
	directory *mocks.Directory
	service   *WorkflowService
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		entities:  mocks.NewEntityStore(),
		approvals: mocks.NewApprovalStore(),
		activity:  mocks.NewActivityLog(),
		directory: mocks.NewDirectory(),
	}
	f.service = NewWorkflowService(f.entities, f.approvals, f.activity, f.directory, discardLogger())
	return f
}

func (f *workflowFixture) createDocument(t *testing.T, category string) *entities.Document {
	t.Helper()
	doc := &entities.Document{
		Title:    "Quarterly Handbook",
		Category: category,
		Content:  "original content",
		Version:  entities.InitialVersion,
		Status:   entities.StatusDraft,
	}
	require.NoError(t, f.entities.CreateDocument(context.Background(), doc))
	return doc
}

func (f *workflowFixture) createTask(t *testing.T) *entities.Task {
	t.Helper()
	task := &entities.Task{
		Title:    "Prepare audit report",
		Priority: entities.PriorityHigh,
		Status:   entities.StatusDraft,
	}
	require.NoError(t, f.entities.CreateTask(context.Background(), task))
	return task
}

func (f *workflowFixture) approvalsFor(t *testing.T, ref entities.EntityRef) []entities.Approval {
	t.Helper()
	approvals, err := f.approvals.ListApprovalsByEntity(context.Background(), ref)
	require.NoError(t, err)
	return approvals
}

func TestWorkflowSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out one approval per eligible approver", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		f.directory.Grant(11, entities.RoleCoordinator)
		f.directory.Grant(12, entities.RoleEmployee)
		doc := f.createDocument(t, "")

		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))

		updated, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, updated.Status)

		approvals := f.approvalsFor(t, doc.Ref())
		require.Len(t, approvals, 2)
		approverIDs := []int64{approvals[0].UserID, approvals[1].UserID}
		assert.ElementsMatch(t, []int64{10, 11}, approverIDs)
		for _, approval := range approvals {
			assert.Equal(t, entities.StatusPending, approval.Status)
			assert.Nil(t, approval.ApprovedAt)
		}

		submits := f.activity.ByAction(entities.ActionSubmit)
		require.Len(t, submits, 1)
		assert.Equal(t, doc.Ref(), submits[0].Entity)
		assert.Equal(t, "Quarterly Handbook", submits[0].Details)
	})

	t.Run("policy submissions go to managers and admins", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		f.directory.Grant(11, entities.RoleCoordinator)
		f.directory.Grant(13, entities.RoleAdmin)
		policy := f.createDocument(t, entities.CategoryPolicy)

		require.NoError(t, f.service.Submit(ctx, policy.Ref(), policy.CreatedBy))

		approvals := f.approvalsFor(t, policy.Ref())
		require.Len(t, approvals, 2)
		approverIDs := []int64{approvals[0].UserID, approvals[1].UserID}
		assert.ElementsMatch(t, []int64{10, 13}, approverIDs)
	})

	t.Run("missing entity", func(t *testing.T) {
		f := newWorkflowFixture()
		err := f.service.Submit(ctx, entities.EntityRef{Type: entities.TypeDocument, ID: 99}, 1)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("already pending", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		doc := f.createDocument(t, "")
		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))

		err := f.service.Submit(ctx, doc.Ref(), doc.CreatedBy)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("rejected entity can be resubmitted", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		doc := f.createDocument(t, "")
		require.NoError(t, f.entities.UpdateStatus(ctx, doc.Ref(), entities.StatusRejected))

		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))

		updated, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, updated.Status)
	})

	t.Run("empty approver set refuses submission", func(t *testing.T) {
		f := newWorkflowFixture()
		doc := f.createDocument(t, "")

		err := f.service.Submit(ctx, doc.Ref(), doc.CreatedBy)
		assert.ErrorIs(t, err, entities.ErrNoApprovers)

		updated, getErr := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, getErr)
		assert.Equal(t, entities.StatusDraft, updated.Status)
		assert.Empty(t, f.approvalsFor(t, doc.Ref()))
	})

	t.Run("directory failure", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Err = errors.New("directory down")
		doc := f.createDocument(t, "")

		err := f.service.Submit(ctx, doc.Ref(), doc.CreatedBy)
		assert.ErrorIs(t, err, entities.ErrDependency)
	})

	t.Run("fan-out failure restores previous status", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		f.approvals.BatchErr = errors.New("store unavailable")
		doc := f.createDocument(t, "")

		err := f.service.Submit(ctx, doc.Ref(), doc.CreatedBy)
		assert.ErrorIs(t, err, entities.ErrDependency)

		updated, getErr := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, getErr)
		assert.Equal(t, entities.StatusDraft, updated.Status)
		assert.Empty(t, f.approvalsFor(t, doc.Ref()))
	})
}

func TestWorkflowDecide(t *testing.T) {
	ctx := context.Background()

	submitDoc := func(t *testing.T, f *workflowFixture, category string, approvers ...int64) (*entities.Document, []entities.Approval) {
		t.Helper()
		role := entities.RoleManager
		if category == entities.CategoryPolicy {
			role = entities.RoleAdmin
		}
		for _, id := range approvers {
			f.directory.Grant(id, role)
		}
		doc := f.createDocument(t, category)
		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))
		return doc, f.approvalsFor(t, doc.Ref())
	}

	t.Run("unknown decision status", func(t *testing.T) {
		f := newWorkflowFixture()
		_, err := f.service.Decide(ctx, 1, entities.StatusDraft, "", 10)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("missing approval", func(t *testing.T) {
		f := newWorkflowFixture()
		_, err := f.service.Decide(ctx, 42, entities.StatusApproved, "", 10)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("single approval short of unanimity leaves entity pending", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)
		require.Len(t, approvals, 2)

		updated, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "looks good", 10)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, updated.Status)
		assert.Equal(t, "looks good", updated.Comments)
		require.NotNil(t, updated.ApprovedAt)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, current.Status)
	})

	t.Run("unanimous approval transitions document", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "", 10)
		require.NoError(t, err)
		_, err = f.service.Decide(ctx, approvals[1].ID, entities.StatusApproved, "", 11)
		require.NoError(t, err)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, current.Status)

		// Versioning is driven by content edits, not approvals.
		assert.Empty(t, f.activity.ByAction(entities.ActionUpdate))
	})

	t.Run("two of three approvals never transition", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11, 12)
		require.Len(t, approvals, 3)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "", 10)
		require.NoError(t, err)
		_, err = f.service.Decide(ctx, approvals[1].ID, entities.StatusApproved, "", 11)
		require.NoError(t, err)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, current.Status)
	})

	t.Run("rejection vetoes pending approvals", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		updated, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "missing detail", 10)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, updated.Status)
		assert.Equal(t, "missing detail", updated.Comments)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, current.Status)
	})

	t.Run("earlier veto does not block a resubmitted round", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "not yet", 10)
		require.NoError(t, err)

		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))
		for _, a := range f.approvalsFor(t, doc.Ref()) {
			if a.Status != entities.StatusPending {
				continue
			}
			_, err := f.service.Decide(ctx, a.ID, entities.StatusApproved, "", a.UserID)
			require.NoError(t, err)
		}

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, current.Status)
	})

	t.Run("approval in a vetoed round does not revive the entity", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "", 10)
		require.NoError(t, err)
		_, err = f.service.Decide(ctx, approvals[1].ID, entities.StatusApproved, "", 11)
		require.NoError(t, err)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, current.Status)
	})

	t.Run("unanimous approval completes task", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleCoordinator)
		task := f.createTask(t)
		require.NoError(t, f.service.Submit(ctx, task.Ref(), task.CreatedBy))
		approvals := f.approvalsFor(t, task.Ref())
		require.Len(t, approvals, 1)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "", 10)
		require.NoError(t, err)

		current, err := f.entities.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCompleted, current.Status)
	})

	t.Run("rejection reopens task instead of closing it", func(t *testing.T) {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleCoordinator)
		task := f.createTask(t)
		require.NoError(t, f.service.Submit(ctx, task.Ref(), task.CreatedBy))
		approvals := f.approvalsFor(t, task.Ref())
		require.Len(t, approvals, 1)

		updated, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "missing detail", 10)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, updated.Status)
		assert.Equal(t, "missing detail", updated.Comments)

		current, err := f.entities.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, current.Status)
	})

	t.Run("in_progress marks entity unconditionally", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusInProgress, "", 10)
		require.NoError(t, err)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusInProgress, current.Status)
	})

	t.Run("decision survives a vanished entity", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10)
		require.NoError(t, f.entities.DeleteDocument(ctx, doc.ID))

		updated, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "", 10)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, updated.Status)

		stored, err := f.approvals.GetApproval(ctx, approvals[0].ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, stored.Status)
	})

	t.Run("terminal entity is never touched", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10)
		require.NoError(t, f.entities.UpdateStatus(ctx, doc.Ref(), entities.StatusApproved))
		before := len(f.entities.StatusUpdates)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "too late", 10)
		require.NoError(t, err)

		assert.Len(t, f.entities.StatusUpdates, before)
		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, current.Status)
	})

	t.Run("aggregation failure does not fail the decision", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10)
		f.approvals.ListErr = errors.New("store flaking")

		updated, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusApproved, "", 10)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, updated.Status)

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, current.Status)
	})

	t.Run("decision writes one activity entry with comments", func(t *testing.T) {
		f := newWorkflowFixture()
		doc, approvals := submitDoc(t, f, "", 10, 11)

		_, err := f.service.Decide(ctx, approvals[0].ID, entities.StatusRejected, "needs numbers", 10)
		require.NoError(t, err)

		rejections := f.activity.ByAction(string(entities.StatusRejected))
		require.Len(t, rejections, 1)
		assert.Equal(t, doc.Ref(), rejections[0].Entity)
		assert.Equal(t, int64(10), rejections[0].UserID)
		assert.Contains(t, rejections[0].Details, "Quarterly Handbook")
		assert.Contains(t, rejections[0].Details, "needs numbers")
	})
}

// Two approvers deciding at the same moment must not both miss unanimity.
func TestWorkflowDecideConcurrent(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		f := newWorkflowFixture()
		f.directory.Grant(10, entities.RoleManager)
		f.directory.Grant(11, entities.RoleManager)
		f.directory.Grant(12, entities.RoleManager)
		doc := f.createDocument(t, "")
		require.NoError(t, f.service.Submit(ctx, doc.Ref(), doc.CreatedBy))
		approvals := f.approvalsFor(t, doc.Ref())
		require.Len(t, approvals, 3)

		var wg sync.WaitGroup
		for i := range approvals {
			wg.Add(1)
			go func(approvalID, actorID int64) {
				defer wg.Done()
				_, err := f.service.Decide(ctx, approvalID, entities.StatusApproved, "", actorID)
				assert.NoError(t, err)
			}(approvals[i].ID, approvals[i].UserID)
		}
		wg.Wait()

		current, err := f.entities.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusApproved, current.Status)
	}
}
