// Package sqlite provides a SQLite implementation of the docflow store ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Store implements the entity, approval, version, activity, and acceptance
// store ports using SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at cfg.Path.
func NewStore(cfg config.SQLiteConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Store{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Documents (including policy documents, marked by category)
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		version TEXT NOT NULL,
		status TEXT NOT NULL,
		created_by INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
	CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);

	-- Tasks
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_by INTEGER NOT NULL,
		assigned_to INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

	-- Approval records (one per approver per submission)
	CREATE TABLE IF NOT EXISTS approvals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_type TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		comments TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		approved_at TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_approvals_entity ON approvals(entity_type, entity_id);
	CREATE INDEX IF NOT EXISTS idx_approvals_user ON approvals(user_id, status);

	-- Document version history (append-only)
	CREATE TABLE IF NOT EXISTS document_versions (
		id TEXT PRIMARY KEY,
		document_id INTEGER NOT NULL,
		version TEXT NOT NULL,
		content TEXT NOT NULL,
		created_by INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_document_versions_doc ON document_versions(document_id);

	-- Activity log (tracks all actions)
	CREATE TABLE IF NOT EXISTS activity_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activity_entity ON activity_log(entity_type, entity_id);
	CREATE INDEX IF NOT EXISTS idx_activity_action ON activity_log(action);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);

	-- Policy acceptances (one row per user per policy)
	CREATE TABLE IF NOT EXISTS policy_acceptances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		document_id INTEGER NOT NULL,
		accepted_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, document_id)
	);
	CREATE INDEX IF NOT EXISTS idx_acceptances_doc ON policy_acceptances(document_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// CreateDocument inserts a new document and assigns its id.
func (s *Store) CreateDocument(ctx context.Context, doc *entities.Document) error {
	query := `
		INSERT INTO documents (title, department, category, content, version, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		doc.Title,
		doc.Department,
		doc.Category,
		doc.Content,
		doc.Version,
		string(doc.Status),
		doc.CreatedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return nil
}

// GetDocument returns a document by id.
func (s *Store) GetDocument(ctx context.Context, id int64) (*entities.Document, error) {
	query := `
		SELECT id, title, department, category, content, version, status, created_by, created_at, updated_at
		FROM documents
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	return scanDocument(row)
}

// UpdateDocument persists the document's mutable fields.
func (s *Store) UpdateDocument(ctx context.Context, doc *entities.Document) error {
	query := `
		UPDATE documents
		SET title = ?, department = ?, category = ?, content = ?, version = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		doc.Title,
		doc.Department,
		doc.Category,
		doc.Content,
		doc.Version,
		string(doc.Status),
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	return requireRow(result)
}

// ListDocuments lists documents, optionally filtered by status, newest first.
func (s *Store) ListDocuments(ctx context.Context, status entities.Status, limit int) ([]entities.Document, error) {
	query := `
		SELECT id, title, department, category, content, version, status, created_by, created_at, updated_at
		FROM documents
		WHERE (? = '' OR status = ?)
		ORDER BY id DESC
	`
	args := []any{string(status), string(status)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var result []entities.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, rows.Err()
}

// DeleteDocument removes a document by id.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return requireRow(result)
}

// CreateTask inserts a new task and assigns its id.
func (s *Store) CreateTask(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (title, description, priority, status, created_by, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Priority,
		string(task.Status),
		task.CreatedBy,
		task.AssignedTo,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	task.ID = id
	return nil
}

// GetTask returns a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, status, created_by, assigned_to, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	return scanTask(row)
}

// UpdateTask persists the task's mutable fields.
func (s *Store) UpdateTask(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, priority = ?, status = ?, assigned_to = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Priority,
		string(task.Status),
		task.AssignedTo,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(result)
}

// ListTasks lists tasks, optionally filtered by status, newest first.
func (s *Store) ListTasks(ctx context.Context, status entities.Status, limit int) ([]entities.Task, error) {
	query := `
		SELECT id, title, description, priority, status, created_by, assigned_to, created_at, updated_at
		FROM tasks
		WHERE (? = '' OR status = ?)
		ORDER BY id DESC
	`
	args := []any{string(status), string(status)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var result []entities.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *task)
	}
	return result, rows.Err()
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(result)
}

// Get resolves a typed reference to its entity. A policy ref only matches a
// document carrying the policy category.
func (s *Store) Get(ctx context.Context, ref entities.EntityRef) (entities.Entity, error) {
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		doc, err := s.GetDocument(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if (ref.Type == entities.TypePolicy) != doc.IsPolicy() {
			return nil, entities.ErrNotFound
		}
		return doc, nil
	case entities.TypeTask:
		return s.GetTask(ctx, ref.ID)
	}
	return nil, entities.ErrNotFound
}

// UpdateStatus sets the workflow status of the referenced entity.
func (s *Store) UpdateStatus(ctx context.Context, ref entities.EntityRef, status entities.Status) error {
	var query string
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		query = `UPDATE documents SET status = ?, updated_at = ? WHERE id = ?`
	case entities.TypeTask:
		query = `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	default:
		return entities.ErrNotFound
	}
	result, err := s.db.ExecContext(ctx, query, string(status), timeNow(), ref.ID)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return requireRow(result)
}

// CreateApproval inserts a single approval record and assigns its id.
func (s *Store) CreateApproval(ctx context.Context, approval *entities.Approval) error {
	result, err := s.db.ExecContext(ctx, insertApprovalQuery, approvalArgs(approval)...)
	if err != nil {
		return fmt.Errorf("inserting approval: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading approval id: %w", err)
	}
	approval.ID = id
	return nil
}

// CreateApprovalBatch inserts a set of approval records in a single
// transaction. Either every record is written or none are.
func (s *Store) CreateApprovalBatch(ctx context.Context, approvals []*entities.Approval) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, approval := range approvals {
		result, err := tx.ExecContext(ctx, insertApprovalQuery, approvalArgs(approval)...)
		if err != nil {
			return fmt.Errorf("inserting approval: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading approval id: %w", err)
		}
		approval.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing approvals: %w", err)
	}
	return nil
}

const insertApprovalQuery = `
	INSERT INTO approvals (entity_type, entity_id, user_id, status, comments, created_at, approved_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

func approvalArgs(a *entities.Approval) []any {
	return []any{
		string(a.Entity.Type),
		a.Entity.ID,
		a.UserID,
		string(a.Status),
		a.Comments,
		a.CreatedAt,
		a.ApprovedAt,
	}
}

// GetApproval returns an approval record by id.
func (s *Store) GetApproval(ctx context.Context, id int64) (*entities.Approval, error) {
	query := `
		SELECT id, entity_type, entity_id, user_id, status, comments, created_at, approved_at
		FROM approvals
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	return scanApproval(row)
}

// UpdateApproval persists the approval's status, comments, and decision time.
func (s *Store) UpdateApproval(ctx context.Context, approval *entities.Approval) error {
	query := `
		UPDATE approvals
		SET status = ?, comments = ?, approved_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		string(approval.Status),
		approval.Comments,
		approval.ApprovedAt,
		approval.ID,
	)
	if err != nil {
		return fmt.Errorf("updating approval: %w", err)
	}
	return requireRow(result)
}

// ListApprovalsByEntity returns all approval records referencing the entity,
// oldest first.
func (s *Store) ListApprovalsByEntity(ctx context.Context, ref entities.EntityRef) ([]entities.Approval, error) {
	query := `
		SELECT id, entity_type, entity_id, user_id, status, comments, created_at, approved_at
		FROM approvals
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY id ASC
	`
	return s.queryApprovals(ctx, query, string(ref.Type), ref.ID)
}

// ListApprovalsByApprover returns all approval records addressed to the user,
// optionally filtered by status, newest first.
func (s *Store) ListApprovalsByApprover(ctx context.Context, userID int64, status entities.Status) ([]entities.Approval, error) {
	query := `
		SELECT id, entity_type, entity_id, user_id, status, comments, created_at, approved_at
		FROM approvals
		WHERE user_id = ? AND (? = '' OR status = ?)
		ORDER BY id DESC
	`
	return s.queryApprovals(ctx, query, userID, string(status), string(status))
}

// queryApprovals is a helper to execute approval queries.
func (s *Store) queryApprovals(ctx context.Context, query string, args ...any) ([]entities.Approval, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying approvals: %w", err)
	}
	defer rows.Close()

	var result []entities.Approval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *approval)
	}
	return result, rows.Err()
}

// AppendVersion writes a new version row.
func (s *Store) AppendVersion(ctx context.Context, version *entities.DocumentVersion) error {
	query := `
		INSERT INTO document_versions (id, document_id, version, content, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		version.ID,
		version.DocumentID,
		version.Version,
		version.Content,
		version.CreatedBy,
		version.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting document version: %w", err)
	}
	return nil
}

// ListVersionsByDocument returns all versions of a document, newest first.
func (s *Store) ListVersionsByDocument(ctx context.Context, documentID int64) ([]entities.DocumentVersion, error) {
	query := `
		SELECT id, document_id, version, content, created_by, created_at
		FROM document_versions
		WHERE document_id = ?
		ORDER BY created_at DESC, rowid DESC
	`
	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying document versions: %w", err)
	}
	defer rows.Close()

	var result []entities.DocumentVersion
	for rows.Next() {
		var v entities.DocumentVersion
		if err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.Version,
			&v.Content,
			&v.CreatedBy,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning document version: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// LatestVersion returns the most recent version of a document.
func (s *Store) LatestVersion(ctx context.Context, documentID int64) (*entities.DocumentVersion, error) {
	query := `
		SELECT id, document_id, version, content, created_by, created_at
		FROM document_versions
		WHERE document_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, documentID)

	var v entities.DocumentVersion
	err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.Version,
		&v.Content,
		&v.CreatedBy,
		&v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document version: %w", err)
	}
	return &v, nil
}

// AppendActivity writes a new activity entry and assigns its id.
func (s *Store) AppendActivity(ctx context.Context, activity *entities.Activity) error {
	query := `
		INSERT INTO activity_log (user_id, action, entity_type, entity_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		activity.UserID,
		activity.Action,
		string(activity.Entity.Type),
		activity.Entity.ID,
		activity.Details,
		activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading activity id: %w", err)
	}
	activity.ID = id
	return nil
}

// ListActivityByEntity returns activity entries for one entity, newest first.
func (s *Store) ListActivityByEntity(ctx context.Context, ref entities.EntityRef) ([]entities.Activity, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, details, created_at
		FROM activity_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY id DESC
	`
	return s.queryActivity(ctx, query, string(ref.Type), ref.ID)
}

// ListActivityByAction returns activity entries with the given action, newest
// first, up to limit.
func (s *Store) ListActivityByAction(ctx context.Context, action string, limit int) ([]entities.Activity, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, details, created_at
		FROM activity_log
		WHERE action = ?
		ORDER BY id DESC
	`
	args := []any{action}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryActivity(ctx, query, args...)
}

// queryActivity is a helper to execute activity log queries.
func (s *Store) queryActivity(ctx context.Context, query string, args ...any) ([]entities.Activity, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	var result []entities.Activity
	for rows.Next() {
		var entry entities.Activity
		var entityType string
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entityType,
			&entry.Entity.ID,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		entry.Entity.Type = entities.EntityType(entityType)
		result = append(result, entry)
	}
	return result, rows.Err()
}

// CreateAcceptance inserts a new acceptance row and assigns its id.
func (s *Store) CreateAcceptance(ctx context.Context, acceptance *entities.PolicyAcceptance) error {
	query := `
		INSERT INTO policy_acceptances (user_id, document_id, accepted_at)
		VALUES (?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		acceptance.UserID,
		acceptance.DocumentID,
		acceptance.AcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting acceptance: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading acceptance id: %w", err)
	}
	acceptance.ID = id
	return nil
}

// FindAcceptance returns the acceptance row for the (user, document) pair.
func (s *Store) FindAcceptance(ctx context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error) {
	query := `
		SELECT id, user_id, document_id, accepted_at
		FROM policy_acceptances
		WHERE user_id = ? AND document_id = ?
	`
	row := s.db.QueryRowContext(ctx, query, userID, documentID)

	var a entities.PolicyAcceptance
	err := row.Scan(&a.ID, &a.UserID, &a.DocumentID, &a.AcceptedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning acceptance: %w", err)
	}
	return &a, nil
}

// ListAcceptancesByDocument returns all acceptance rows for a document,
// newest first.
func (s *Store) ListAcceptancesByDocument(ctx context.Context, documentID int64) ([]entities.PolicyAcceptance, error) {
	query := `
		SELECT id, user_id, document_id, accepted_at
		FROM policy_acceptances
		WHERE document_id = ?
		ORDER BY id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying acceptances: %w", err)
	}
	defer rows.Close()

	var result []entities.PolicyAcceptance
	for rows.Next() {
		var a entities.PolicyAcceptance
		if err := rows.Scan(&a.ID, &a.UserID, &a.DocumentID, &a.AcceptedAt); err != nil {
			return nil, fmt.Errorf("scanning acceptance: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*entities.Document, error) {
	var doc entities.Document
	var status string
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Department,
		&doc.Category,
		&doc.Content,
		&doc.Version,
		&status,
		&doc.CreatedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Status = entities.Status(status)
	return &doc, nil
}

func scanTask(row scanner) (*entities.Task, error) {
	var task entities.Task
	var status string
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&status,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	task.Status = entities.Status(status)
	return &task, nil
}

func scanApproval(row scanner) (*entities.Approval, error) {
	var a entities.Approval
	var entityType, status string
	var approvedAt sql.NullTime
	err := row.Scan(
		&a.ID,
		&entityType,
		&a.Entity.ID,
		&a.UserID,
		&status,
		&a.Comments,
		&a.CreatedAt,
		&approvedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning approval: %w", err)
	}
	a.Entity.Type = entities.EntityType(entityType)
	a.Status = entities.Status(status)
	if approvedAt.Valid {
		t := approvedAt.Time
		a.ApprovedAt = &t
	}
	return &a, nil
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if rows == 0 {
		return entities.ErrNotFound
	}
	return nil
}
