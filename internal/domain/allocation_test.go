package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestVerdictFor_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		want    Verdict
	}{
		{"exactly 1000 is healthy", "1000", VerdictHealthy},
		{"999.99 is tight", "999.99", VerdictTight},
		{"0.01 is tight", "0.01", VerdictTight},
		{"exactly zero is negative", "0", VerdictNegative},
		{"below zero is negative", "-100", VerdictNegative},
		{"well above threshold is healthy", "1700", VerdictHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := decimal.NewFromString(tt.balance)
			if err != nil {
				t.Fatalf("bad test balance %q: %v", tt.balance, err)
			}
			if got := VerdictFor(balance); got != tt.want {
				t.Errorf("VerdictFor(%s) = %s, want %s", tt.balance, got, tt.want)
			}
		})
	}
}

func TestVerdict_Advice(t *testing.T) {
	for _, v := range []Verdict{VerdictHealthy, VerdictTight, VerdictNegative} {
		if v.Advice() == "" {
			t.Errorf("Verdict %s has empty advice", v)
		}
	}
}
