package utils

import (
	"errors"
	"testing"

	pkgerrors "HerShield/pkg/errors"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		defaultRegion string
		want          string
		wantErr       bool
	}{
		{
			name: "already E164",
			raw:  "+16502530000",
			want: "+16502530000",
		},
		{
			name: "formatting stripped",
			raw:  "+1 650-253-0000",
			want: "+16502530000",
		},
		{
			name: "leading and trailing spaces",
			raw:  "  +442071838750  ",
			want: "+442071838750",
		},
		{
			name:          "national number with default region",
			raw:           "650-253-0000",
			defaultRegion: "US",
			want:          "+16502530000",
		},
		{
			name:    "missing country code without default region",
			raw:     "6502530000",
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "not a number",
			raw:     "call me maybe",
			wantErr: true,
		},
		{
			name:    "too short to be valid",
			raw:     "+1234",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.defaultRegion)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) = %q, expected error", tt.raw, got)
				}
				if !errors.Is(err, pkgerrors.PhoneMalformed) {
					t.Errorf("error %v is not PhoneMalformed", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("NormalizePhone(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	first, err := NormalizePhone("+1 (650) 253-0000", "")
	if err != nil {
		t.Fatalf("first normalize failed: %v", err)
	}

	second, err := NormalizePhone(first, "")
	if err != nil {
		t.Fatalf("second normalize failed: %v", err)
	}

	if first != second {
		t.Errorf("normalize not idempotent: %q != %q", first, second)
	}
}

func TestMaskPhone(t *testing.T) {
	masked := MaskPhone("+16502530000")
	if masked == "+16502530000" {
		t.Error("masked phone should differ from original")
	}
	if masked[:3] != "+16" {
		t.Errorf("mask should keep prefix, got %q", masked)
	}
	if masked[len(masked)-4:] != "0000" {
		t.Errorf("mask should keep last four digits, got %q", masked)
	}

	// 短输入原样返回，没有信息可隐藏
	if MaskPhone("12345") != "12345" {
		t.Error("short input should pass through")
	}
}
