// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListAccountsQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildListAccountsQuery(20, 10)
	require.NoError(t, err)

	// squirrel renders LIMIT/OFFSET as literals, not placeholders.
	require.Empty(t, args)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from accounts")
	require.Contains(t, q, "order by created_at asc, id asc")
	require.Contains(t, q, "limit 10")
	require.Contains(t, q, "offset 20")
}

func Test_buildListAccountsQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := buildListAccountsQuery(0, 50)
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	for _, col := range accountColumns {
		require.Contains(t, q, col)
	}
}

func Test_buildUpdateProfileQuery(t *testing.T) {
	id := uuid.New()
	firstName := "John"
	bio := "Gopher"

	tests := []struct {
		name       string
		patch      models.ProfilePatch
		wantErr    error
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:  "success: single field",
			patch: models.ProfilePatch{Bio: &bio},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "UPDATE accounts")
				assert.Contains(t, query, "bio = $1")
				assert.Contains(t, query, "updated_at = now()")
				assert.Contains(t, query, "WHERE id = $2")
				assert.Contains(t, query, "RETURNING")

				require.Len(t, args, 2)
				assert.Equal(t, bio, args[0])
				assert.Equal(t, id, args[1])
			},
		},
		{
			name:  "success: two fields",
			patch: models.ProfilePatch{FirstName: &firstName, Bio: &bio},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "first_name = $1")
				assert.Contains(t, query, "bio = $2")

				require.Len(t, args, 3)
				assert.Equal(t, firstName, args[0])
				assert.Equal(t, bio, args[1])
				assert.Equal(t, id, args[2])
			},
		},
		{
			name:    "error: empty patch",
			patch:   models.ProfilePatch{},
			wantErr: ErrEmptyProfilePatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateProfileQuery(id, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildUpdateProfileQuery_NeverTouchesRestrictedColumns(t *testing.T) {
	id := uuid.New()
	v := "x"
	patch := models.ProfilePatch{
		FirstName:         &v,
		LastName:          &v,
		Bio:               &v,
		ProfilePictureURL: &v,
		LinkedinURL:       &v,
		GithubURL:         &v,
	}

	query, args, err := buildUpdateProfileQuery(id, patch)
	require.NoError(t, err)
	require.Len(t, args, 7) // six fields plus the ID

	q := strings.ToLower(query)
	for _, restricted := range []string{"role", "hashed_password", "email_verified", "is_locked", "is_professional", "failed_login_attempts"} {
		// SET clause must not assign restricted columns. They still appear in
		// the RETURNING list, so check the assignment form specifically.
		assert.NotContains(t, q, restricted+" = ")
	}
}
