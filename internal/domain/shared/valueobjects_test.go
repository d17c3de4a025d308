package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentIDTrimsWhitespace(t *testing.T) {
	sid, err := NewStudentID("  student-1  ")
	require.NoError(t, err)

	assert.Equal(t, "student-1", sid.String())
	assert.True(t, sid.IsValid())
	assert.False(t, sid.IsEmpty())
}

func TestNewStudentIDRejectsBlank(t *testing.T) {
	_, err := NewStudentID("   ")
	require.Error(t, err)

	assert.True(t, IsUnauthorized(err))
	assert.True(t, StudentID("").IsEmpty())
}

func TestNewStudentIDRejectsOversized(t *testing.T) {
	_, err := NewStudentID(strings.Repeat("x", maxStudentIDLen+1))
	require.Error(t, err)

	assert.True(t, IsUnauthorized(err))
}
