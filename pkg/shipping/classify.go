package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChargeClassifier splits carrier charge lines into discount and duty/tax
// subtotals by substring match against the carrier-assigned line names.
// The match sets are deliberately per-carrier: every adapter declares its
// own table instead of sharing a global constant, because the naming of
// discount and tax lines does not generalize across carriers.
type ChargeClassifier struct {
	// Discount lists the substrings identifying discount lines.
	Discount []string
	// DutiesTaxes lists the substrings identifying duty/tax lines.
	DutiesTaxes []string
}

// Classify sums discount and duty/tax lines and returns every unmatched
// line as a generic surcharge. No line is ever dropped: lines matched by
// neither set come back in surcharges verbatim.
func (c ChargeClassifier) Classify(charges []ChargeDetails) (discount, dutiesTaxes float64, surcharges []ChargeDetails) {
	discountSum := decimal.Zero
	dutiesSum := decimal.Zero

	for _, charge := range charges {
		switch {
		case matchesAny(charge.Name, c.Discount):
			discountSum = discountSum.Add(decimal.NewFromFloat(charge.Amount))
		case matchesAny(charge.Name, c.DutiesTaxes):
			dutiesSum = dutiesSum.Add(decimal.NewFromFloat(charge.Amount))
		default:
			surcharges = append(surcharges, charge)
		}
	}

	discount, _ = discountSum.Round(2).Float64()
	dutiesTaxes, _ = dutiesSum.Round(2).Float64()
	return discount, dutiesTaxes, surcharges
}

func matchesAny(name string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(name, needle) {
			return true
		}
	}
	return false
}
