package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceTotal(t *testing.T) {
	require.Equal(t, 199.0, Price{Base: 199}.Total())
	require.Equal(t, 204.99, Price{Base: 199.99, Shipping: 5}.Total())
}

func TestPriceRangeMinMax(t *testing.T) {
	tests := []struct {
		name    string
		prices  []Price
		wantMin float64
		wantMax float64
		wantOK  bool
	}{
		{
			name:   "empty",
			prices: nil,
			wantOK: false,
		},
		{
			name:    "single price",
			prices:  []Price{{Base: 50}},
			wantMin: 50,
			wantMax: 50,
			wantOK:  true,
		},
		{
			name:    "duplicates collapse",
			prices:  []Price{{Base: 199}, {Base: 249.99}, {Base: 199}},
			wantMin: 199,
			wantMax: 249.99,
			wantOK:  true,
		},
		{
			name:    "shipping counts towards total",
			prices:  []Price{{Base: 200}, {Base: 195, Shipping: 10}},
			wantMin: 200,
			wantMax: 205,
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PriceRange{Prices: tt.prices}

			lo, okMin := r.Min()
			hi, okMax := r.Max()

			require.Equal(t, tt.wantOK, okMin)
			require.Equal(t, tt.wantOK, okMax)
			if tt.wantOK {
				require.Equal(t, tt.wantMin, lo)
				require.Equal(t, tt.wantMax, hi)
				require.GreaterOrEqual(t, hi, lo)
			}
		})
	}
}

func TestTrimOutliers(t *testing.T) {
	prices := []Price{{Base: 400}, {Base: 420}, {Base: 20}, {Base: 410}}

	kept := TrimOutliers(prices, 0.5)
	require.Len(t, kept, 3)
	for _, p := range kept {
		require.Greater(t, p.Base, 100.0)
	}

	// zero deviation disables trimming
	require.Equal(t, prices, TrimOutliers(prices, 0))
	require.Empty(t, TrimOutliers(nil, 0.5))
}
