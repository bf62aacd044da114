package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func TestDocumentApprovalCycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	doc := &entities.Document{Title: "Expense Guidelines", Content: "v1 body"}
	require.NoError(t, e.documents.HandleCreate(ctx, doc, employeeID))
	assert.Equal(t, entities.StatusDraft, doc.Status)

	require.NoError(t, e.workflow.HandleSubmit(ctx, doc.Ref(), employeeID))

	got, err := e.documents.HandleGet(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, got.Status)

	// Document approvers are the manager and coordinator role holders.
	approvals, err := e.workflow.HandleListEntityApprovals(ctx, doc.Ref())
	require.NoError(t, err)
	require.Len(t, approvals, 2)
	approverIDs := []int64{approvals[0].UserID, approvals[1].UserID}
	assert.ElementsMatch(t, []int64{managerID, coordinatorID}, approverIDs)

	// A single approval is short of unanimity; the document stays pending.
	_, err = e.workflow.HandleDecide(ctx, approvals[0].ID, entities.StatusApproved, "fine", approvals[0].UserID)
	require.NoError(t, err)
	got, err = e.documents.HandleGet(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, got.Status)

	// Unanimity approves the document.
	_, err = e.workflow.HandleDecide(ctx, approvals[1].ID, entities.StatusApproved, "", approvals[1].UserID)
	require.NoError(t, err)
	got, err = e.documents.HandleGet(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusApproved, got.Status)

	// The audit trail records creation, submission, and both decisions.
	activity, err := e.activity.HandleForEntity(ctx, doc.Ref())
	require.NoError(t, err)
	require.Len(t, activity, 4)
	assert.Equal(t, entities.ActionCreate, activity[3].Action)
	assert.Equal(t, entities.ActionSubmit, activity[2].Action)
}

func TestDocumentVetoAndResubmit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	doc := &entities.Document{Title: "Risky Proposal"}
	require.NoError(t, e.documents.HandleCreate(ctx, doc, employeeID))
	require.NoError(t, e.workflow.HandleSubmit(ctx, doc.Ref(), employeeID))

	// A single rejection vetoes regardless of other approvers.
	approvals, err := e.workflow.HandleListEntityApprovals(ctx, doc.Ref())
	require.NoError(t, err)
	_, err = e.workflow.HandleDecide(ctx, approvals[0].ID, entities.StatusRejected, "not viable", approvals[0].UserID)
	require.NoError(t, err)

	got, err := e.documents.HandleGet(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusRejected, got.Status)

	// A rejected document may be resubmitted; the new round gets fresh
	// pending records alongside the decided ones.
	require.NoError(t, e.workflow.HandleSubmit(ctx, doc.Ref(), employeeID))
	approvals, err = e.workflow.HandleListEntityApprovals(ctx, doc.Ref())
	require.NoError(t, err)
	assert.Len(t, approvals, 4)

	e.decideAll(t, doc.Ref(), entities.StatusApproved)
	got, err = e.documents.HandleGet(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusApproved, got.Status)
}

func TestTaskCompletionAndReopen(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	task := &entities.Task{Title: "Migrate billing data", Priority: entities.PriorityHigh}
	require.NoError(t, e.tasks.HandleCreate(ctx, task, employeeID))

	require.NoError(t, e.workflow.HandleSubmit(ctx, task.Ref(), employeeID))
	e.decideAll(t, task.Ref(), entities.StatusApproved)

	got, err := e.tasks.HandleGet(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, got.Status, "approved tasks complete")

	// A rejected task reopens to pending instead of closing.
	task2 := &entities.Task{Title: "Delete production database"}
	require.NoError(t, e.tasks.HandleCreate(ctx, task2, employeeID))
	require.NoError(t, e.workflow.HandleSubmit(ctx, task2.Ref(), employeeID))

	approvals, err := e.workflow.HandleListEntityApprovals(ctx, task2.Ref())
	require.NoError(t, err)
	_, err = e.workflow.HandleDecide(ctx, approvals[0].ID, entities.StatusRejected, "absolutely not", approvals[0].UserID)
	require.NoError(t, err)

	got, err = e.tasks.HandleGet(ctx, task2.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, got.Status)
}

func TestPolicyAcceptanceCycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	policy := &entities.Document{Title: "Code of Conduct", Category: entities.CategoryPolicy, Content: "be kind"}
	require.NoError(t, e.documents.HandleCreate(ctx, policy, managerID))
	require.Equal(t, entities.TypePolicy, policy.Ref().Type)

	// Acceptance before approval is refused.
	_, err := e.policies.HandleAccept(ctx, employeeID, policy.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	require.NoError(t, e.workflow.HandleSubmit(ctx, policy.Ref(), managerID))

	// Policy approvers are the manager and admin role holders.
	approvals, err := e.workflow.HandleListEntityApprovals(ctx, policy.Ref())
	require.NoError(t, err)
	require.Len(t, approvals, 2)
	approverIDs := []int64{approvals[0].UserID, approvals[1].UserID}
	assert.ElementsMatch(t, []int64{adminID, managerID}, approverIDs)

	e.decideAll(t, policy.Ref(), entities.StatusApproved)

	first, err := e.policies.HandleAccept(ctx, employeeID, policy.ID)
	require.NoError(t, err)

	// Re-acceptance returns the original row.
	second, err := e.policies.HandleAccept(ctx, employeeID, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	acceptances, err := e.policies.HandleListAcceptances(ctx, policy.ID)
	require.NoError(t, err)
	assert.Len(t, acceptances, 1)
}

func TestVersionHistorySurvivesReopen(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	doc := &entities.Document{Title: "Runbook", Content: "step one"}
	require.NoError(t, e.documents.HandleCreate(ctx, doc, employeeID))

	_, err := e.documents.HandleUpdate(ctx, doc.ID, "", "", "", "step one and two", employeeID)
	require.NoError(t, err)

	versions, err := e.documents.HandleHistory(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "1.1", versions[0].Version)
	assert.Equal(t, "step one and two", versions[0].Content)
	assert.Equal(t, "1.0", versions[1].Version)
	assert.Equal(t, "step one", versions[1].Content)
}

func TestAuthorizationBoundaries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	doc := &entities.Document{Title: "Private Draft"}
	require.NoError(t, e.documents.HandleCreate(ctx, doc, managerID))

	// A plain employee may not submit someone else's document.
	err := e.workflow.HandleSubmit(ctx, doc.Ref(), employeeID)
	assert.ErrorIs(t, err, entities.ErrForbidden)

	// An admin may, ownership notwithstanding.
	require.NoError(t, e.workflow.HandleSubmit(ctx, doc.Ref(), adminID))

	// A plain employee may not decide.
	approvals, err := e.workflow.HandleListEntityApprovals(ctx, doc.Ref())
	require.NoError(t, err)
	_, err = e.workflow.HandleDecide(ctx, approvals[0].ID, entities.StatusApproved, "", employeeID)
	assert.ErrorIs(t, err, entities.ErrForbidden)
}
