package formance

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/sdkerrors"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
)

// ---------- Unit tests for pure helpers (no Formance stack needed) ----------

func TestFormanceAsset(t *testing.T) {
	tests := []struct {
		currency string
		want     string
	}{
		{"BDT", "BDT/2"},
		{"USD", "USD/2"},
		{"JPY", "JPY/0"},
		{"UNKNOWN", "UNKNOWN/2"}, // default precision
	}
	for _, tt := range tests {
		if got := formanceAsset(tt.currency); got != tt.want {
			t.Errorf("formanceAsset(%q) = %q, want %q", tt.currency, got, tt.want)
		}
	}
}

func TestAssetCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"BDT/2", "BDT"},
		{"JPY/0", "JPY"},
		{"PLAIN", "PLAIN"},
	}
	for _, tt := range tests {
		if got := assetCurrency(tt.input); got != tt.want {
			t.Errorf("assetCurrency(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSmallestUnits(t *testing.T) {
	if got := smallestUnits(decimal.RequireFromString("500"), "BDT"); got != "50000" {
		t.Errorf("expected 50000, got %s", got)
	}
	if got := smallestUnits(decimal.RequireFromString("12.34"), "BDT"); got != "1234" {
		t.Errorf("expected 1234, got %s", got)
	}
	if got := smallestUnits(decimal.RequireFromString("700"), "JPY"); got != "700" {
		t.Errorf("expected 700, got %s", got)
	}
}

func TestMovementScript(t *testing.T) {
	script, abs := movementScript(decimal.NewFromInt(50))
	if script != numscriptCredit || !abs.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected credit script for positive delta, got abs %s", abs.String())
	}

	script, abs = movementScript(decimal.NewFromInt(-20))
	if script != numscriptDebit || !abs.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected debit script with absolute amount, got abs %s", abs.String())
	}
}

func TestBigIntToDecimal(t *testing.T) {
	result := bigIntToDecimal(big.NewInt(50_000), "BDT")
	if !result.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected 500, got %s", result.String())
	}

	result = bigIntToDecimal(big.NewInt(-2_000), "BDT")
	if !result.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("expected -20, got %s", result.String())
	}

	result = bigIntToDecimal(nil, "BDT")
	if !result.IsZero() {
		t.Errorf("expected 0, got %s", result.String())
	}
}

func TestVolumeBalance(t *testing.T) {
	vols := map[string]shared.V2Volume{
		"BDT/2": {Input: big.NewInt(10_000), Output: big.NewInt(2_500)},
	}
	bal := volumeBalance(vols, "BDT/2")
	if bal == nil || bal.Int64() != 7_500 {
		t.Errorf("expected 7500 from input-output, got %v", bal)
	}
	if volumeBalance(vols, "USD/2") != nil {
		t.Error("expected nil for missing asset")
	}
}

func TestIsConflictError(t *testing.T) {
	conflict := &sdkerrors.V2ErrorResponse{ErrorCode: shared.V2ErrorsEnumConflict}
	if !isConflictError(fmt.Errorf("wrapped: %w", conflict)) {
		t.Error("expected wrapped conflict to be detected")
	}
	if isConflictError(fmt.Errorf("plain error")) {
		t.Error("plain error should not be a conflict")
	}
	notFound := &sdkerrors.V2ErrorResponse{ErrorCode: shared.V2ErrorsEnumNotFound}
	if !isNotFoundError(notFound) {
		t.Error("expected not found to be detected")
	}
}
