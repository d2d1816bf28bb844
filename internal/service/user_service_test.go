package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestApplyDecimalField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "empty leaves value untouched", raw: "", want: "10"},
		{name: "valid value applied", raw: "25000000.50", want: "25000000.5"},
		{name: "invalid string rejected", raw: "abc", wantErr: true},
		{name: "negative rejected", raw: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := decimal.NewFromInt(10)
			err := applyDecimalField(tt.raw, &dst, "annual_turnover")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dst.String() != tt.want {
				t.Errorf("dst = %s, want %s", dst, tt.want)
			}
		})
	}
}
