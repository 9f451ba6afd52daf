package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted start-date format.
const DateLayout = "2006-01-02"

var (
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidDate     = errors.New("invalid date")
)

// ParsePrice parses a strictly positive unit price like "0.5" or "1.2".
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPrice, s)
	}
	if p <= 0 {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidPrice)
	}
	return p, nil
}

// ParseQuantity parses a strictly positive integer quantity.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuantity, s)
	}
	if q < 1 {
		return 0, fmt.Errorf("%w: must be at least 1", ErrInvalidQuantity)
	}
	return q, nil
}

// ParseStartDate validates a "YYYY-MM-DD" date and returns its normalized
// form. Future dates are allowed; the spend estimate just evaluates to zero
// for them.
func ParseStartDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return d.Format(DateLayout), nil
}
