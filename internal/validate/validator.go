// Package validate applies per-row quality rules to the raw sales feed and
// splits it into a clean partition and a quarantined partition.
package validate

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/salesmart/internal/sales"
	"github.com/shopspring/decimal"
)

// A rule routes a record to quarantine when violated. Rules only inspect the
// record; they never perform I/O and never fail the run.
type rule struct {
	name     string
	violated func(sales.RawRecord) bool
}

// rules are checked in order; the first violation decides the quarantine
// reason, and a record is quarantined at most once.
var rules = []rule{
	{name: "missing_customer_name", violated: missingCustomerName},
	{name: "non_positive_price", violated: nonPositivePrice},
	{name: "malformed_quantity", violated: malformedQuantity},
	{name: "malformed_total_amount", violated: malformedTotalAmount},
}

// Validator partitions raw records into clean and quarantined subsets.
type Validator struct {
	logger *slog.Logger
}

// New creates a Validator. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{logger: logger}
}

// Partition splits records into (clean, quarantined). Every input record
// lands in exactly one partition, and each partition preserves the relative
// input order. The input slice is not modified.
func (v *Validator) Partition(records []sales.RawRecord) (clean, quarantined []sales.RawRecord) {
	clean = make([]sales.RawRecord, 0, len(records))
	quarantined = make([]sales.RawRecord, 0)

	for _, r := range records {
		if reason, bad := v.check(r); bad {
			v.logger.Debug("quarantined record", "order_id", r.OrderID, "rule", reason)
			quarantined = append(quarantined, r)
			continue
		}
		clean = append(clean, r)
	}

	return clean, quarantined
}

// check returns the name of the first violated rule, if any.
func (v *Validator) check(r sales.RawRecord) (string, bool) {
	for _, rule := range rules {
		if rule.violated(r) {
			return rule.name, true
		}
	}
	return "", false
}

func missingCustomerName(r sales.RawRecord) bool {
	return strings.TrimSpace(r.CustomerName) == ""
}

// nonPositivePrice also catches a missing or unparseable price: a value the
// warehouse cannot treat as a number is dirty data, not a fatal error.
func nonPositivePrice(r sales.RawRecord) bool {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return true
	}
	return price.Sign() <= 0
}

func malformedQuantity(r sales.RawRecord) bool {
	_, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	return err != nil
}

func malformedTotalAmount(r sales.RawRecord) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(r.TotalAmount))
	return err != nil
}
