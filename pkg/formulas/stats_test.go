package formulas

import (
	"math"
	"testing"
)

func makeReturns(value float64, count int) []float64 {
	returns := make([]float64, count)
	for i := range returns {
		returns[i] = value
	}
	return returns
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{name: "empty", data: []float64{}, expected: 0},
		{name: "single value", data: []float64{5}, expected: 5},
		{name: "simple average", data: []float64{1, 2, 3, 4}, expected: 2.5},
		{name: "negative values", data: []float64{-2, 2}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mean(tt.data)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Mean() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name      string
		data      []float64
		expected  float64
		tolerance float64
	}{
		{name: "empty", data: []float64{}, expected: 0},
		{name: "single value", data: []float64{3}, expected: 0},
		{name: "identical values", data: []float64{2, 2, 2, 2}, expected: 0, tolerance: 1e-9},
		{name: "known sample", data: []float64{2, 4, 4, 4, 5, 5, 7, 9}, expected: 2.138, tolerance: 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StdDev(tt.data)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("StdDev() = %v, want %v (±%v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	tests := []struct {
		name      string
		returns   []float64
		expected  float64
		tolerance float64
	}{
		{name: "empty returns", returns: []float64{}, expected: 0},
		{name: "single return", returns: []float64{0.01}, expected: 0},
		{name: "constant returns have zero volatility", returns: makeReturns(0.001, 100), expected: 0, tolerance: 1e-9},
		{
			name:      "alternating returns",
			returns:   []float64{0.01, -0.01, 0.01, -0.01, 0.01, -0.01},
			expected:  StdDev([]float64{0.01, -0.01, 0.01, -0.01, 0.01, -0.01}) * math.Sqrt(252) * 100,
			tolerance: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnualizedVolatility(tt.returns)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("AnnualizedVolatility() = %v, want %v (±%v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestAnnualizedReturn(t *testing.T) {
	tests := []struct {
		name      string
		returns   []float64
		expected  float64
		tolerance float64
	}{
		{name: "empty returns", returns: []float64{}, expected: 0},
		{name: "zero returns", returns: makeReturns(0, 252), expected: 0, tolerance: 1e-9},
		{
			name:      "one year of small positive returns",
			returns:   makeReturns(0.001, 252),
			expected:  28.6, // (1.001^252) - 1 ≈ 28.6%
			tolerance: 0.1,
		},
		{
			name:      "half year annualizes up",
			returns:   makeReturns(0.002, 126),
			expected:  65.4, // (1.002^126)^2 - 1 ≈ 65.4%
			tolerance: 0.2,
		},
		{
			name:      "negative year",
			returns:   makeReturns(-0.001, 252),
			expected:  -22.3,
			tolerance: 0.2,
		},
		{
			name:      "total wipe-out floors at -100",
			returns:   []float64{-1.0},
			expected:  -100,
			tolerance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnualizedReturn(tt.returns)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("AnnualizedReturn() = %v, want %v (±%v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestCalculateReturns(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected []float64
	}{
		{name: "empty", prices: []float64{}, expected: []float64{}},
		{name: "single price", prices: []float64{100}, expected: []float64{}},
		{name: "rising prices", prices: []float64{100, 110, 121}, expected: []float64{0.10, 0.10}},
		{name: "zero price guarded", prices: []float64{0, 100}, expected: []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateReturns(tt.prices)
			if len(result) != len(tt.expected) {
				t.Fatalf("CalculateReturns() returned %d values, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("CalculateReturns()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCorrelation(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{2, 4, 6, 8, 10}
		if r := Correlation(x, y); math.Abs(r-1.0) > 1e-9 {
			t.Errorf("Correlation() = %v, want 1.0", r)
		}
	})

	t.Run("perfect negative", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{10, 8, 6, 4, 2}
		if r := Correlation(x, y); math.Abs(r+1.0) > 1e-9 {
			t.Errorf("Correlation() = %v, want -1.0", r)
		}
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		if r := Correlation([]float64{1, 2}, []float64{1}); r != 0 {
			t.Errorf("Correlation() = %v, want 0", r)
		}
	})
}
