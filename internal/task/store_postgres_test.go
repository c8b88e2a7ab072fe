// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/pkg/pointer"
)

var stampClause = regexp.MustCompile(
	`^completedat = CASE WHEN \$(\d+) = '([a-z-]+)' AND status <> '([a-z-]+)' THEN \$(\d+)::timestamptz ELSE completedat END$`)

func TestUpdateAssignments_TitleOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sets, args := updateAssignments(Patch{Title: pointer.To("Ship")}, now)

	assert.Equal(t, []string{"title = $3"}, sets)
	assert.Equal(t, []any{"Ship"}, args)
}

func TestUpdateAssignments_Empty(t *testing.T) {
	sets, args := updateAssignments(Patch{}, time.Now())

	assert.Empty(t, sets)
	assert.Empty(t, args)
}

func TestUpdateAssignments_StatusStampsInSameStatement(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sets, args := updateAssignments(Patch{
		Title:       pointer.To("Ship"),
		Description: pointer.To("Release build"),
		Status:      pointer.To(string(StatusCompleted)),
	}, now)

	require.Len(t, sets, 4)
	assert.Equal(t, "title = $3", sets[0])
	assert.Equal(t, "description = $4", sets[1])
	assert.Equal(t, "status = $5", sets[2])
	assert.Equal(t,
		"completedat = CASE WHEN $5 = 'completed' AND status <> 'completed' THEN $6::timestamptz ELSE completedat END",
		sets[3])
	assert.Equal(t, []any{"Ship", "Release build", "completed", now}, args)
}

func TestUpdateAssignments_StatusPlaceholdersFollowPresentFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sets, args := updateAssignments(Patch{Status: pointer.To(string(StatusInProgress))}, now)

	require.Len(t, sets, 2)
	assert.Equal(t, "status = $3", sets[0])

	match := stampClause.FindStringSubmatch(sets[1])
	require.NotNil(t, match, sets[1])
	assert.Equal(t, "3", match[1])
	assert.Equal(t, "4", match[4])

	// $1 and $2 are the id and assignee, so $N maps to args[N-3].
	assert.Equal(t, "in-progress", args[placeholder(t, match[1])-3])
	assert.Equal(t, now, args[placeholder(t, match[4])-3])
}

// The SQL stamp and the in-memory stamp must agree on every transition.
func TestUpdateAssignments_StampMatchesMemoryStore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	for _, from := range Statuses {
		for _, to := range Statuses {
			t.Run(from+"->"+to, func(t *testing.T) {
				patch := Patch{Status: pointer.To(to)}

				sets, args := updateAssignments(patch, now)
				require.Len(t, sets, 2)
				match := stampClause.FindStringSubmatch(sets[1])
				require.NotNil(t, match, sets[1])

				incoming := args[placeholder(t, match[1])-3].(string)
				sqlStamps := incoming == match[2] && from != match[3]

				var previous *time.Time
				if from == string(StatusCompleted) {
					previous = &earlier
				}
				stored := &Task{Status: Status(from), CompletedAt: previous}
				patch.applyTo(stored, now)

				if sqlStamps {
					require.NotNil(t, stored.CompletedAt)
					assert.Equal(t, now, *stored.CompletedAt)
				} else {
					assert.Equal(t, previous, stored.CompletedAt)
				}
				assert.Equal(t, to == string(StatusCompleted) && from != string(StatusCompleted), sqlStamps)
			})
		}
	}
}

func placeholder(t *testing.T, raw string) int {
	t.Helper()
	n, err := strconv.Atoi(raw)
	require.NoError(t, err)
	return n
}
