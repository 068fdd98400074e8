// Package storage provides the SQLite export of ranked wallet tables.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/walletscore/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRun    = errors.New("invalid scoring run")
	ErrInvalidWallet = errors.New("invalid scored wallet")
	ErrNotFound      = errors.New("not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates run metadata before it is stored.
func validateRun(run *model.RunSummary) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	return nil
}

// validateWallets validates scored wallets before they are stored.
func validateWallets(wallets []model.ScoredWallet) error {
	for i, w := range wallets {
		if strings.TrimSpace(w.WalletID) == "" {
			return fmt.Errorf("%w at index %d: missing wallet address", ErrInvalidWallet, i)
		}
		if math.IsNaN(w.Score) || math.IsInf(w.Score, 0) {
			return fmt.Errorf("%w at index %d: score is not finite", ErrInvalidWallet, i)
		}
		for _, v := range w.Totals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at index %d: total is not finite", ErrInvalidWallet, i)
			}
		}
	}
	return nil
}
