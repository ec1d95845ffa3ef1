package util

import (
	"regexp"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ValidateMonth checks a "YYYY-MM" month key.
func ValidateMonth(month string) bool {
	return monthPattern.MatchString(month)
}

// ParseDate parses a "YYYY-MM-DD" date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
