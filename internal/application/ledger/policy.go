package ledger

import (
	"fmt"

	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// NewLateFeePolicy builds the late fee policy from the ledger config section.
// Empty fee entries keep the built-in amount for that cadence.
func NewLateFeePolicy(cfg config.LedgerConfig) (*ledger.LateFeePolicy, error) {
	opts := []ledger.LateFeeOption{ledger.WithGraceDays(cfg.GraceDays)}

	fees := []struct {
		cadence ledger.Cadence
		raw     string
	}{
		{ledger.CadenceWeekly, cfg.LateFee.Weekly},
		{ledger.CadenceBiWeekly, cfg.LateFee.BiWeekly},
		{ledger.CadenceMonthly, cfg.LateFee.Monthly},
	}
	for _, f := range fees {
		if f.raw == "" {
			continue
		}
		fee, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, fmt.Errorf("ledger.late_fee.%s: %w", f.cadence, err)
		}
		opts = append(opts, ledger.WithFee(f.cadence, fee))
	}
	return ledger.NewLateFeePolicy(opts...)
}
