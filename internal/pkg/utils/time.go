package utils

import (
	"sisregip-service/internal/pkg/constvars"
	"strings"
	"time"
)

// ParseDateBR parses a DD/MM/YYYY date. Blank input yields a nil time.
func ParseDateBR(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(constvars.DateLayoutBR, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// FormatDateBR renders a stored date as DD/MM/YYYY. Stored dates are either
// ISO dates or full timestamps depending on the driver.
func FormatDateBR(stored string) string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return ""
	}
	if len(stored) >= len(constvars.DateLayoutISO) {
		if parsed, err := time.Parse(constvars.DateLayoutISO, stored[:len(constvars.DateLayoutISO)]); err == nil {
			return parsed.Format(constvars.DateLayoutBR)
		}
	}
	return stored
}

// ToISODate converts an optional date to the value bound to SQL parameters.
func ToISODate(value *time.Time) interface{} {
	if value == nil {
		return nil
	}
	return value.Format(constvars.DateLayoutISO)
}
