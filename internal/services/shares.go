package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/warehouse/internal/engine"
	"github.com/epeers/warehouse/internal/models"
)

// Share keys name the four storage lines in the line mix
const (
	ShareStorage   = "storage_share"
	ShareLoan      = "loan_share"
	ShareVIP       = "vip_share"
	ShareShortTerm = "short_term_share"
)

var ErrUnknownShare = errors.New("unknown share key")

var shareKeys = []string{ShareStorage, ShareLoan, ShareVIP, ShareShortTerm}

func shareRef(s *engine.Shares, key string) (*float64, error) {
	switch key {
	case ShareStorage:
		return &s.Storage, nil
	case ShareLoan:
		return &s.Loan, nil
	case ShareVIP:
		return &s.VIP, nil
	case ShareShortTerm:
		return &s.ShortTerm, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownShare, key)
}

// DisableLines zeroes the share of every listed line
func DisableLines(s engine.Shares, disabled []string) (engine.Shares, error) {
	for _, key := range disabled {
		ref, err := shareRef(&s, key)
		if err != nil {
			return s, err
		}
		*ref = 0
	}
	return s, nil
}

// NormalizeShares sets the changed share to value and rescales the other
// enabled shares proportionally so the mix sums to at most 1. When the other
// shares are all zero they stay zero. A disabled line always ends at 0.
func NormalizeShares(ctx context.Context, current engine.Shares, changed string, value float64, disabled []string) (engine.Shares, error) {
	if value < 0 || value > 1 {
		return current, &ValidationError{Problems: []string{fmt.Sprintf("%s must be between 0 and 1, got %g", changed, value)}}
	}
	if _, err := shareRef(&current, changed); err != nil {
		return current, err
	}

	s, err := DisableLines(current, disabled)
	if err != nil {
		return current, err
	}
	off := make(map[string]bool, len(disabled))
	for _, key := range disabled {
		off[key] = true
	}
	if len(off) == len(shareKeys) {
		Warnf(ctx, models.WarnAllLinesDisabled, "every storage line is disabled, the whole shelf area is unallocated")
	}
	if off[changed] {
		value = 0
	}

	remaining := 1.0 - value
	if remaining < 0 {
		remaining = 0
	}

	totalOther := 0.0
	for _, key := range shareKeys {
		if key == changed || off[key] {
			continue
		}
		ref, _ := shareRef(&s, key)
		totalOther += *ref
	}

	for _, key := range shareKeys {
		if key == changed || off[key] {
			continue
		}
		ref, _ := shareRef(&s, key)
		if totalOther > 0 {
			*ref = *ref / totalOther * remaining
		} else {
			*ref = 0
		}
	}

	ref, _ := shareRef(&s, changed)
	*ref = value
	return s, nil
}
