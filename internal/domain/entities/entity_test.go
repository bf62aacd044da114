package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusDraft.Submittable())
	assert.True(t, StatusRejected.Submittable())
	assert.False(t, StatusPending.Submittable())
	assert.False(t, StatusApproved.Submittable())

	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.False(t, StatusRejected.Terminal())

	assert.True(t, StatusApproved.DecisionStatus())
	assert.True(t, StatusRejected.DecisionStatus())
	assert.True(t, StatusInProgress.DecisionStatus())
	assert.False(t, StatusPending.DecisionStatus())
	assert.False(t, StatusCompleted.DecisionStatus())
}

func TestOutcomeMapping(t *testing.T) {
	assert.Equal(t, StatusApproved, ApprovedOutcome(TypeDocument))
	assert.Equal(t, StatusApproved, ApprovedOutcome(TypePolicy))
	assert.Equal(t, StatusCompleted, ApprovedOutcome(TypeTask))

	assert.Equal(t, StatusRejected, RejectedOutcome(TypeDocument))
	assert.Equal(t, StatusRejected, RejectedOutcome(TypePolicy))
	assert.Equal(t, StatusPending, RejectedOutcome(TypeTask))
}

func TestDocumentRefCarriesPolicyTag(t *testing.T) {
	doc := &Document{ID: 4, Title: "Handbook"}
	assert.Equal(t, EntityRef{Type: TypeDocument, ID: 4}, doc.Ref())

	doc.Category = CategoryPolicy
	assert.Equal(t, EntityRef{Type: TypePolicy, ID: 4}, doc.Ref())
}

func TestApproverRolesTable(t *testing.T) {
	assert.ElementsMatch(t, []Role{RoleManager, RoleCoordinator}, ApproverRolesFor(TypeDocument))
	assert.ElementsMatch(t, []Role{RoleManager, RoleCoordinator}, ApproverRolesFor(TypeTask))
	assert.ElementsMatch(t, []Role{RoleManager, RoleAdmin}, ApproverRolesFor(TypePolicy))
}
