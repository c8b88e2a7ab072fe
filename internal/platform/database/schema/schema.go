// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns created by data/migrations.
//
// Stores build their SQL from these descriptors so that a column rename is a
// one-line change here plus a migration.
package schema

import "strings"

// columnList joins column names for SELECT and RETURNING clauses.
func columnList(columns ...string) string {
	return strings.Join(columns, ", ")
}

// qualified prefixes every column with alias, e.g. "t.id, t.title".
func qualified(alias string, columns ...string) string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}
