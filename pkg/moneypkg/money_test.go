package moneypkg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd64(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr error
	}{
		{name: "Simple", a: 100, b: 60, want: 160},
		{name: "Negative", a: 100, b: -160, want: -60},
		{name: "Overflow", a: math.MaxInt64, b: 1, wantErr: ErrOverflow},
		{name: "Underflow", a: math.MinInt64, b: -1, wantErr: ErrOverflow},
		{name: "MaxBoundary", a: math.MaxInt64 - 1, b: 1, want: math.MaxInt64},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got, err := Add64(tc.a, tc.b)

			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMul64(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr error
	}{
		{name: "Simple", a: 100, b: 2, want: 200},
		{name: "Zero", a: 0, b: math.MaxInt64, want: 0},
		{name: "Overflow", a: math.MaxInt64, b: 2, wantErr: ErrOverflow},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got, err := Mul64(tc.a, tc.b)

			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
