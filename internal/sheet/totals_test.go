package sheet_test

import (
	"math"
	"testing"

	"feesheet/internal/sheet"
)

func TestSumFees(t *testing.T) {
	rows := []sheet.Row{
		{Fees: "15,000"},
		{Fees: ""},
		{Fees: "-200"},
		{Fees: "abc"},
		{Fees: "9999"},
		{Fees: "12.8"},
	}
	if got, want := sheet.SumFees(rows), int64(15000+9999+12); got != want {
		t.Fatalf("SumFees = %d, want %d", got, want)
	}
	if got := sheet.SumFees(nil); got != 0 {
		t.Fatalf("SumFees(nil) = %d", got)
	}
}

func TestSumFeesSaturates(t *testing.T) {
	rows := make([]sheet.Row, 1100)
	for i := range rows {
		rows[i].Fees = "9,007,199,254,740,991"
	}
	if got := sheet.SumFees(rows); got != math.MaxInt64 {
		t.Fatalf("SumFees = %d, want saturation at %d", got, int64(math.MaxInt64))
	}

	out := []sheet.Row{{Fees: "9,000,000,000,000,000,000"}, {Fees: "9,000,000,000,000,000,000"}, {Fees: "500"}}
	if got := sheet.SumFees(out); got != 500 {
		t.Fatalf("SumFees with out-of-range fees = %d, want 500", got)
	}
}
