// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/database/schema"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
)

const resourceTask = "Task"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTask(row pgx.Row) (*Task, error) {
	t := &Task{}
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Project, &t.AssignedTo, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		schema.BoardTask.Select(), schema.BoardTask.Table,
		schema.BoardTask.ProjectID, schema.BoardTask.CreatedAt, schema.BoardTask.ID)

	rows, err := repository.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceTask, "list_tasks")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceTask, "scan_task")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceTask, "list_tasks")
	}

	return tasks, nil
}

func (repository *PostgresRepository) FindAssigned(ctx context.Context, id, assigneeID string) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BoardTask.Select(), schema.BoardTask.Table,
		schema.BoardTask.ID, schema.BoardTask.AssignedTo)

	t, err := scanTask(repository.db.QueryRow(ctx, query, id, assigneeID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTask, "find_task")
	}
	return t, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, task *Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.BoardTask.Table,
		schema.BoardTask.ID, schema.BoardTask.Title, schema.BoardTask.Description, schema.BoardTask.Status,
		schema.BoardTask.ProjectID, schema.BoardTask.AssignedTo,
		schema.BoardTask.CreatedAt, schema.BoardTask.CompletedAt,
	)

	now := time.Now().UTC()
	_, err := repository.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status,
		task.Project, task.AssignedTo, now, task.CompletedAt)
	if err != nil {
		if dberr.IsForeignKeyViolation(err, schema.BoardTask.AssigneeForeignKey) {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldAssignedTo,
				Message: "User does not exist",
			}).WithCause(err)
		}
		return dberr.Wrap(err, resourceTask, "create_task")
	}

	task.CreatedAt = now
	return nil
}

// updateAssignments builds the SET list for a patch. Placeholders start at $3
// since $1 and $2 hold the task id and assignee. completedat is stamped in the
// same statement, comparing against the pre-update status so only a
// transition into completed stamps it.
func updateAssignments(patch Patch, now time.Time) ([]string, []any) {
	const reserved = 2
	var args []any
	sets := make([]string, 0, 4)

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, reserved+len(args)))
	}
	set(schema.BoardTask.Title, patch.Title)
	set(schema.BoardTask.Description, patch.Description)

	if patch.Status != nil {
		args = append(args, *patch.Status, now)
		statusArg, nowArg := reserved+len(args)-1, reserved+len(args)
		sets = append(sets,
			fmt.Sprintf("%s = $%d", schema.BoardTask.Status, statusArg),
			fmt.Sprintf("%s = CASE WHEN $%d = '%s' AND %s <> '%s' THEN $%d::timestamptz ELSE %s END",
				schema.BoardTask.CompletedAt, statusArg, StatusCompleted,
				schema.BoardTask.Status, StatusCompleted, nowArg, schema.BoardTask.CompletedAt),
		)
	}
	return sets, args
}

func (repository *PostgresRepository) UpdateAssigned(ctx context.Context, id, assigneeID string, patch Patch, now time.Time) (*Task, error) {
	sets, values := updateAssignments(patch, now)
	if len(sets) == 0 {
		return repository.FindAssigned(ctx, id, assigneeID)
	}
	args := append([]any{id, assigneeID}, values...)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.BoardTask.Table, strings.Join(sets, ", "),
		schema.BoardTask.ID, schema.BoardTask.AssignedTo,
		schema.BoardTask.Select())

	t, err := scanTask(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTask, "update_task")
	}
	return t, nil
}

func (repository *PostgresRepository) DeleteAssigned(ctx context.Context, id, assigneeID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BoardTask.Table, schema.BoardTask.ID, schema.BoardTask.AssignedTo)

	tag, err := repository.db.Exec(ctx, query, id, assigneeID)
	if err != nil {
		return dberr.Wrap(err, resourceTask, "delete_task")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceTask)
	}
	return nil
}
