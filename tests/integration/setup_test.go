package integration

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docflow/docflow-core/internal/application/handlers"
	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/services"
	"github.com/docflow/docflow-core/internal/infrastructure/config"
	"github.com/docflow/docflow-core/internal/infrastructure/directory/yamlfile"
	"github.com/docflow/docflow-core/internal/infrastructure/store/sqlite"
)

// Test registry user ids. The registry mirrors what `docflow init` seeds.
const (
	adminID       = int64(1)
	managerID     = int64(2)
	coordinatorID = int64(3)
	employeeID    = int64(4)
)

// env wires the full stack against a file-backed SQLite store.
type env struct {
	store     *sqlite.Store
	workflow  *handlers.WorkflowHandler
	documents *handlers.DocumentHandler
	tasks     *handlers.TaskHandler
	policies  *handlers.PolicyHandler
	activity  *handlers.ActivityHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "docflow.db")
	store, err := sqlite.NewStore(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))

	directory, err := yamlfile.Parse([]byte(`
users:
  - id: 1
    name: admin
    roles: [admin]
  - id: 2
    name: manager
    roles: [manager]
  - id: 3
    name: coordinator
    roles: [coordinator]
  - id: 4
    name: employee
    roles: [employee]
`))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	workflowService := services.NewWorkflowService(store, store, store, directory, logger)
	documentService := services.NewDocumentService(store, store, store, logger)
	taskService := services.NewTaskService(store, store, logger)
	acceptanceService := services.NewAcceptanceService(store, store, store, logger)

	return &env{
		store:     store,
		workflow:  handlers.NewWorkflowHandler(workflowService, store, store, directory),
		documents: handlers.NewDocumentHandler(documentService, directory),
		tasks:     handlers.NewTaskHandler(taskService, directory),
		policies:  handlers.NewPolicyHandler(acceptanceService),
		activity:  handlers.NewActivityHandler(store),
	}
}

// decideAll records the same decision on every pending approval for ref.
func (e *env) decideAll(t *testing.T, ref entities.EntityRef, status entities.Status) {
	t.Helper()
	ctx := context.Background()
	approvals, err := e.workflow.HandleListEntityApprovals(ctx, ref)
	require.NoError(t, err)
	for _, a := range approvals {
		if a.Status != entities.StatusPending {
			continue
		}
		_, err := e.workflow.HandleDecide(ctx, a.ID, status, "", a.UserID)
		require.NoError(t, err)
	}
}
