package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMigrationSQL_AttachesUpdatedAtTriggers(t *testing.T) {
	stmts := postMigrationSQL()
	require.NotEmpty(t, stmts)
	assert.Contains(t, stmts[0], "FUNCTION set_current_timestamp_updated_at()")

	tests := []struct {
		table   string
		trigger string
	}{
		{table: "users", trigger: "set_users_updated_at"},
		{table: "lesson_plans", trigger: "set_lesson_plans_updated_at"},
		{table: "files", trigger: "set_files_updated_at"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			drop, create := -1, -1
			for i, stmt := range stmts {
				switch {
				case strings.HasPrefix(stmt, "DROP TRIGGER IF EXISTS "+tt.trigger+" ON "+tt.table+";"):
					drop = i
				case strings.HasPrefix(stmt, "CREATE TRIGGER "+tt.trigger+" BEFORE UPDATE ON "+tt.table+" "):
					create = i
					assert.Contains(t, stmt, "EXECUTE FUNCTION set_current_timestamp_updated_at()")
				}
			}
			require.NotEqual(t, -1, drop, "trigger is not dropped before re-creation")
			require.NotEqual(t, -1, create, "trigger is never created")
			assert.Less(t, drop, create)
		})
	}
}
