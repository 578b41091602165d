package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("teacher")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, r)

	r, err = ParseRole("student")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, r)

	_, err = ParseRole("admin")
	require.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole("")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestAnswer_Provided(t *testing.T) {
	assert.False(t, Answer{}.Provided())
	assert.True(t, Answer{Text: "disorder"}.Provided())
	assert.True(t, Answer{ImagePath: "scan.jpg"}.Provided())
	assert.True(t, Answer{Text: "t", ImagePath: "i"}.Provided())
}

func TestTest_UnmarshalServerPayload(t *testing.T) {
	raw := `{"id": 5, "name": "Midterm", "description": null, "created_at": "2026-03-01T10:00:00Z"}`

	var tt Test
	require.NoError(t, json.Unmarshal([]byte(raw), &tt))
	assert.Equal(t, int64(5), tt.ID)
	assert.Equal(t, "Midterm", tt.Name)
	assert.Empty(t, tt.Description)
	assert.Equal(t, 2026, tt.CreatedAt.Year())
}
