package model

import (
	"strings"
	"time"
)

const (
	DefaultName   = "Untitled Post"
	DefaultSymbol = "POST"
	ZeroAmount    = "0"

	ManualName   = "Manual Entry"
	ManualSymbol = "MANUAL"
)

// TokenRecord is one published post coin as shown on a creator dashboard.
// Amounts are integer base units with 18 decimals, kept as decimal strings.
type TokenRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Address        string `json:"address"`
	CreatedAt      string `json:"createdAt"`
	TotalSupply    string `json:"totalSupply"`
	MarketCap      string `json:"marketCap"`
	CreatorAddress string `json:"creatorAddress"`
}

// RawCoin is a coin node as returned by a list or detail query. Empty strings
// mean the field was absent in the response.
type RawCoin struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Description    string `json:"description,omitempty"`
	Address        string `json:"address"`
	CreatedAt      string `json:"createdAt"`
	TotalSupply    string `json:"totalSupply"`
	TotalVolume    string `json:"totalVolume,omitempty"`
	Volume24h      string `json:"volume24h,omitempty"`
	MarketCap      string `json:"marketCap"`
	CreatorAddress string `json:"creatorAddress"`
	UniqueHolders  int64  `json:"uniqueHolders"`
	ChainID        int64  `json:"chainId,omitempty"`
	PreviewImage   string `json:"previewImage,omitempty"`
}

// NewTokenRecord normalizes a raw coin, filling absent fields with defaults.
// now is used for a missing creation time.
func NewTokenRecord(raw RawCoin, now time.Time) TokenRecord {
	return TokenRecord{
		ID:             raw.ID,
		Name:           orDefault(raw.Name, DefaultName),
		Symbol:         orDefault(raw.Symbol, DefaultSymbol),
		Address:        raw.Address,
		CreatedAt:      orDefault(raw.CreatedAt, now.UTC().Format(time.RFC3339Nano)),
		TotalSupply:    orDefault(raw.TotalSupply, ZeroAmount),
		MarketCap:      orDefault(raw.MarketCap, ZeroAmount),
		CreatorAddress: raw.CreatorAddress,
	}
}

// NewManualRecord builds the placeholder record for an address entered by hand.
func NewManualRecord(creator, address string, now time.Time) TokenRecord {
	return TokenRecord{
		ID:             address,
		Name:           ManualName,
		Symbol:         ManualSymbol,
		Address:        address,
		CreatedAt:      now.UTC().Format(time.RFC3339Nano),
		TotalSupply:    ZeroAmount,
		MarketCap:      ZeroAmount,
		CreatorAddress: creator,
	}
}

// AddressKey returns the canonical (lower-case) form of an address.
func AddressKey(address string) string {
	return strings.ToLower(address)
}

// CreatedBy reports whether the record was created by creator, ignoring case.
func (r TokenRecord) CreatedBy(creator string) bool {
	return strings.EqualFold(r.CreatorAddress, creator)
}

// FilterByCreator returns the records created by creator, preserving order.
func FilterByCreator(records []TokenRecord, creator string) []TokenRecord {
	out := make([]TokenRecord, 0)
	for _, record := range records {
		if record.CreatedBy(creator) {
			out = append(out, record)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
