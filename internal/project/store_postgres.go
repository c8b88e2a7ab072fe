// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

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

const resourceProject = "Project"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.Owner, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		schema.BoardProject.Select(), schema.BoardProject.Table,
		schema.BoardProject.OwnerID, schema.BoardProject.CreatedAt, schema.BoardProject.ID)

	rows, err := repository.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceProject, "list_projects")
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceProject, "scan_project")
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceProject, "list_projects")
	}

	return projects, nil
}

func (repository *PostgresRepository) FindOwned(ctx context.Context, id, ownerID string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BoardProject.Select(), schema.BoardProject.Table,
		schema.BoardProject.ID, schema.BoardProject.OwnerID)

	p, err := scanProject(repository.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceProject, "find_project")
	}
	return p, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, project *Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		schema.BoardProject.Table,
		schema.BoardProject.ID, schema.BoardProject.Title, schema.BoardProject.Description,
		schema.BoardProject.Status, schema.BoardProject.OwnerID,
		schema.BoardProject.CreatedAt, schema.BoardProject.UpdatedAt,
	)

	now := time.Now().UTC()
	_, err := repository.db.Exec(ctx, query,
		project.ID, project.Title, project.Description, project.Status, project.Owner, now)
	if err != nil {
		return dberr.Wrap(err, resourceProject, "create_project")
	}

	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

// UpdateOwned builds the SET list from the non-nil patch fields.
func (repository *PostgresRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch Patch) (*Project, error) {
	args := []any{id, ownerID}
	sets := make([]string, 0, 4)

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set(schema.BoardProject.Title, patch.Title)
	set(schema.BoardProject.Description, patch.Description)
	set(schema.BoardProject.Status, patch.Status)
	sets = append(sets, schema.BoardProject.UpdatedAt+" = now()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.BoardProject.Table, strings.Join(sets, ", "),
		schema.BoardProject.ID, schema.BoardProject.OwnerID,
		schema.BoardProject.Select())

	p, err := scanProject(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceProject, "update_project")
	}
	return p, nil
}

func (repository *PostgresRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BoardProject.Table, schema.BoardProject.ID, schema.BoardProject.OwnerID)

	tag, err := repository.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceProject, "delete_project")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceProject)
	}
	return nil
}
