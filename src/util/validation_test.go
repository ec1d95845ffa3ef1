package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.domain.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("bob"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("password123"))
	assert.False(t, ValidatePassword("short"))
}

func TestValidateMonth(t *testing.T) {
	assert.True(t, ValidateMonth("2024-01"))
	assert.True(t, ValidateMonth("1999-12"))
	assert.False(t, ValidateMonth("2024-13"))
	assert.False(t, ValidateMonth("2024-1"))
	assert.False(t, ValidateMonth("202401"))
	assert.False(t, ValidateMonth("2024-01-01"))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-05-17")
	assert.NoError(t, err)
	assert.Equal(t, 17, date.Day())

	_, err = ParseDate("17/05/2024")
	assert.Error(t, err)
}
