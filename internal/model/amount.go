package model

import (
	"github.com/shopspring/decimal"
)

// EtherDecimals is the fixed-point scale of coin amounts.
const EtherDecimals = 18

// ParseEther converts an integer base-unit string into ether units.
// Empty, fractional or malformed input yields zero.
func ParseEther(wei string) decimal.Decimal {
	if wei == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(wei)
	if err != nil || !d.IsInteger() {
		return decimal.Zero
	}
	return d.Shift(-EtherDecimals)
}

// FormatEther renders an integer base-unit string in ether units without
// trailing zeros, e.g. "1500000000000000000" -> "1.5".
func FormatEther(wei string) string {
	return ParseEther(wei).String()
}

// TotalMarketCap sums the market caps of records in ether units.
func TotalMarketCap(records []TokenRecord) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(ParseEther(record.MarketCap))
	}
	return total
}
