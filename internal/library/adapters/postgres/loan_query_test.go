package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/library/ports/repositories"
)

func TestBuildLoanListQuery(t *testing.T) {
	today := time.Date(2024, 2, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   repositories.LoanFilter
		contains []string
		absent   []string
		args     []interface{}
	}{
		{
			name:     "all loans",
			contains: []string{`FROM "loans"`, `fine_amount::text`, `ORDER BY "loan_date" ASC, "id" ASC`},
			absent:   []string{"WHERE"},
		},
		{
			name:     "history for user",
			filter:   repositories.LoanFilter{UserID: "u1"},
			contains: []string{`"user_id" = $1`},
			absent:   []string{"IS NULL", `"due_date"`},
			args:     []interface{}{"u1"},
		},
		{
			name:     "active for user",
			filter:   repositories.LoanFilter{UserID: "u1", OpenOnly: true},
			contains: []string{`"user_id" = $1`, `"return_date" IS NULL`},
			absent:   []string{`"due_date" <`},
			args:     []interface{}{"u1"},
		},
		{
			name:     "overdue for user",
			filter:   repositories.LoanFilter{UserID: "u1", OpenOnly: true, DueBefore: &today},
			contains: []string{`"user_id" = $1`, `"return_date" IS NULL`, `"due_date" < $2`},
			args:     []interface{}{"u1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		{
			name:     "open loans of everyone",
			filter:   repositories.LoanFilter{OpenOnly: true},
			contains: []string{`"return_date" IS NULL`},
			absent:   []string{`"user_id" =`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildLoanListQuery(tt.filter)
			require.NoError(t, err)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.absent {
				assert.NotContains(t, query, fragment)
			}
			require.Len(t, args, len(tt.args))
			for i := range tt.args {
				assert.EqualValues(t, tt.args[i], args[i])
			}
		})
	}
}
