package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount Cents
		want   string
	}{
		{name: "zero", amount: 0, want: "$0.00"},
		{name: "whole dollars", amount: 220_00, want: "$220.00"},
		{name: "with cents", amount: 56_075, want: "$560.75"},
		{name: "cents only", amount: 5, want: "$0.05"},
		{name: "thousands grouping", amount: 1_234_50, want: "$1,234.50"},
		{name: "millions grouping", amount: 1_234_567_89, want: "$1,234,567.89"},
		{name: "negative", amount: -50_25, want: "-$50.25"},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, FormatMoney(tc.amount))
		})
	}
}

func TestFormatDateLocalized(t *testing.T) {
	t.Parallel()

	require.Equal(t, "15 de enero de 2024", FormatDateLocalized(Date(2024, 1, 15)))
	require.Equal(t, "6 de agosto de 2025", FormatDateLocalized(Date(2025, 8, 6)))
	require.Equal(t, "31 de diciembre de 2024", FormatDateLocalized(Date(2024, 12, 31)))
}
