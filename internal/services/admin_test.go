package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPolicyRecursion(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"policy recursion code", &pgconn.PgError{Code: "42P17"}, true},
		{"wrapped policy recursion", fmt.Errorf("query failed: %w", &pgconn.PgError{Code: "42P17"}), true},
		{"other pg error", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isPolicyRecursion(tc.err); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.io", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			if got := emailRegex.MatchString(tc.email); got != tc.valid {
				t.Errorf("Expected %v for %q, got %v", tc.valid, tc.email, got)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "StrongPass1", false},
		{"too short", "Ab1", true},
		{"no uppercase", "weakpass1", true},
		{"no lowercase", "WEAKPASS1", true},
		{"no digit", "WeakPassword", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("Expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}
