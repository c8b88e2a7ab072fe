// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BoardTaskTable represents the 'board.task' table
type BoardTaskTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Status      string
	ProjectID   string
	AssignedTo  string
	CreatedAt   string
	CompletedAt string

	// AssigneeForeignKey references users.account.
	AssigneeForeignKey string
}

// BoardTask is the schema definition for board.task
var BoardTask = BoardTaskTable{
	Table:              "board.task",
	ID:                 "id",
	Title:              "title",
	Description:        "description",
	Status:             "status",
	ProjectID:          "projectid",
	AssignedTo:         "assignedto",
	CreatedAt:          "createdat",
	CompletedAt:        "completedat",
	AssigneeForeignKey: "task_assignedto_fkey",
}

// Columns returns all column names in scan order
func (t BoardTaskTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Status, t.ProjectID, t.AssignedTo, t.CreatedAt, t.CompletedAt}
}

// Select returns the column list for SELECT and RETURNING clauses.
func (t BoardTaskTable) Select() string {
	return columnList(t.Columns()...)
}

// SelectAs returns the column list qualified with a table alias.
func (t BoardTaskTable) SelectAs(alias string) string {
	return qualified(alias, t.Columns()...)
}
