package models

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{
			name:   "zero",
			amount: 0,
			want:   "Zero Rupees Only",
		},
		{
			name:   "single digit",
			amount: 7,
			want:   "Seven Rupees Only",
		},
		{
			name:   "teens",
			amount: 14,
			want:   "Fourteen Rupees Only",
		},
		{
			name:   "round tens",
			amount: 90,
			want:   "Ninety Rupees Only",
		},
		{
			name:   "tens with units",
			amount: 42,
			want:   "Forty Two Rupees Only",
		},
		{
			name:   "hundreds",
			amount: 305,
			want:   "Three Hundred Five Rupees Only",
		},
		{
			name:   "thousands",
			amount: 1180,
			want:   "One Thousand One Hundred Eighty Rupees Only",
		},
		{
			name:   "two digit thousands",
			amount: 45000,
			want:   "Forty Five Thousand Rupees Only",
		},
		{
			name:   "lakh",
			amount: 100000,
			want:   "One Lakh Rupees Only",
		},
		{
			name:   "lakh with remainder",
			amount: 250750,
			want:   "Two Lakh Fifty Thousand Seven Hundred Fifty Rupees Only",
		},
		{
			name:   "crore",
			amount: 10000000,
			want:   "One Crore Rupees Only",
		},
		{
			name:   "crore composite",
			amount: 12345678,
			want:   "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only",
		},
		{
			name:   "hundreds of crore recurse",
			amount: 1230000000,
			want:   "One Hundred Twenty Three Crore Rupees Only",
		},
		{
			name:   "paise rounded down",
			amount: 99.49,
			want:   "Ninety Nine Rupees Only",
		},
		{
			name:   "paise rounded up",
			amount: 99.50,
			want:   "One Hundred Rupees Only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountInWords(tt.amount)
			if got != tt.want {
				t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
