// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	Country   string
	Username  string
	CreatedAt string
	UpdatedAt string

	// EmailUnique is the constraint guarding case-folded email uniqueness.
	EmailUnique string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Name:        "name",
	Email:       "email",
	Password:    "passwordhash",
	Country:     "country",
	Username:    "username",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	EmailUnique: "account_email_key",
}

// Columns returns all column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Password, t.Country, t.Username, t.CreatedAt, t.UpdatedAt}
}

// Select returns the column list for SELECT and RETURNING clauses.
func (t UserAccountTable) Select() string {
	return columnList(t.Columns()...)
}
