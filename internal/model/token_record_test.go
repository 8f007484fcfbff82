package model

import (
	"reflect"
	"testing"
	"time"
)

func TestNewTokenRecordDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got := NewTokenRecord(RawCoin{ID: "c1", Address: "0xabc"}, now)

	want := TokenRecord{
		ID:             "c1",
		Name:           DefaultName,
		Symbol:         DefaultSymbol,
		Address:        "0xabc",
		CreatedAt:      "2024-05-01T12:00:00Z",
		TotalSupply:    "0",
		MarketCap:      "0",
		CreatorAddress: "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("record mismatch: %+v != %+v", got, want)
	}
}

func TestNewTokenRecordKeepsFields(t *testing.T) {
	raw := RawCoin{
		ID:             "c2",
		Name:           "Hello World",
		Symbol:         "HW",
		Address:        "0xdef",
		CreatedAt:      "2024-01-01T00:00:00Z",
		TotalSupply:    "1000000000000000000000000000",
		MarketCap:      "42",
		CreatorAddress: "0xC1",
	}
	got := NewTokenRecord(raw, time.Now())
	if got.Name != "Hello World" || got.Symbol != "HW" || got.CreatedAt != raw.CreatedAt {
		t.Fatalf("fields overwritten: %+v", got)
	}
	if got.TotalSupply != raw.TotalSupply || got.MarketCap != "42" || got.CreatorAddress != "0xC1" {
		t.Fatalf("amounts or creator overwritten: %+v", got)
	}
}

func TestNewManualRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got := NewManualRecord("0xC1", "0x1111111111111111111111111111111111111111", now)
	if got.ID != got.Address || got.Name != ManualName || got.Symbol != ManualSymbol {
		t.Fatalf("unexpected placeholder: %+v", got)
	}
	if got.TotalSupply != "0" || got.MarketCap != "0" || got.CreatorAddress != "0xC1" {
		t.Fatalf("unexpected placeholder amounts: %+v", got)
	}
}

func TestFilterByCreatorIgnoresCase(t *testing.T) {
	records := []TokenRecord{
		{Address: "0x1", CreatorAddress: "0xAbC"},
		{Address: "0x2", CreatorAddress: "0xdef"},
		{Address: "0x3", CreatorAddress: "0xabc"},
		{Address: "0x4", CreatorAddress: ""},
	}
	got := FilterByCreator(records, "0xABC")
	if len(got) != 2 || got[0].Address != "0x1" || got[1].Address != "0x3" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if empty := FilterByCreator(nil, "0xabc"); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
