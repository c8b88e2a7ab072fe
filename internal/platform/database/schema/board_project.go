// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BoardProjectTable represents the 'board.project' table
type BoardProjectTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Status      string
	OwnerID     string
	CreatedAt   string
	UpdatedAt   string
}

// BoardProject is the schema definition for board.project
var BoardProject = BoardProjectTable{
	Table:       "board.project",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Status:      "status",
	OwnerID:     "ownerid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all column names in scan order
func (t BoardProjectTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Status, t.OwnerID, t.CreatedAt, t.UpdatedAt}
}

// Select returns the column list for SELECT and RETURNING clauses.
func (t BoardProjectTable) Select() string {
	return columnList(t.Columns()...)
}
