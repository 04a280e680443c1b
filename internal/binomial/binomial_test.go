package binomial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestCombinationKnownValues(t *testing.T) {
	tests := []struct {
		n, k     int
		expected float64
	}{
		{5, 2, 10},
		{10, 0, 1},
		{10, 10, 1},
		{50, 5, 2118760},
		{50, 20, 47129212243960},
		{4, 5, 0},
		{4, -1, 0},
	}

	for _, tt := range tests {
		got := Combination(tt.n, tt.k)
		if tt.expected == 0 {
			assert.Equal(t, 0.0, got, "C(%d,%d)", tt.n, tt.k)
			continue
		}
		assert.InEpsilon(t, tt.expected, got, 1e-12, "C(%d,%d)", tt.n, tt.k)
	}
}

func TestCombinationSymmetry(t *testing.T) {
	for n := 0; n <= 120; n++ {
		for k := 0; k <= n; k++ {
			if Combination(n, k) != Combination(n, n-k) {
				t.Fatalf("C(%d,%d) != C(%d,%d)", n, k, n, n-k)
			}
		}
	}
}

func TestPMFInvalidDomain(t *testing.T) {
	tests := []struct {
		name string
		k, n int
		p    float64
	}{
		{"k above n", 6, 5, 0.5},
		{"negative k", -1, 5, 0.5},
		{"negative n", 0, -1, 0.5},
		{"p below zero", 1, 5, -0.01},
		{"p above one", 1, 5, 1.01},
		{"p NaN", 1, 5, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, PMF(tt.k, tt.n, tt.p))
		})
	}
}

func TestPMFDegenerateRates(t *testing.T) {
	assert.Equal(t, 1.0, PMF(0, 10, 0))
	assert.Equal(t, 0.0, PMF(1, 10, 0))
	assert.Equal(t, 1.0, PMF(10, 10, 1))
	assert.Equal(t, 0.0, PMF(9, 10, 1))
	assert.Equal(t, 1.0, PMF(0, 0, 0.3))
}

func TestPMFMatchesGonum(t *testing.T) {
	cases := []struct {
		n int
		p float64
	}{
		{6, 0.279},
		{50, 0.153},
		{50, 0.287},
		{95, 1.0 / 12.0},
		{1500, 1.0 / 480.0},
		{3000, 0.5}, // coefficient overflows, log path
	}

	for _, c := range cases {
		ref := distuv.Binomial{N: float64(c.n), P: c.p}
		for k := 0; k <= c.n; k += 1 + c.n/60 {
			got := PMF(k, c.n, c.p)
			want := ref.Prob(float64(k))
			assert.InDelta(t, want, got, 1e-9, "PMF(%d,%d,%v)", k, c.n, c.p)
			assert.False(t, math.IsNaN(got))
		}
	}
}

func TestPMFSumsToOne(t *testing.T) {
	for _, n := range []int{1, 6, 50, 500, 3000} {
		for _, p := range []float64{0.001, 1.0 / 600.0, 0.153, 0.5, 0.97} {
			sum := 0.0
			for k := 0; k <= n; k++ {
				sum += PMF(k, n, p)
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "n=%d p=%v", n, p)
		}
	}
}

func TestUpperTail(t *testing.T) {
	// P(X >= 2) for n=6, p=0.176
	want := 1 - math.Pow(0.824, 6) - 6*0.176*math.Pow(0.824, 5)
	assert.InDelta(t, want, UpperTail(2, 6, 0.176), 1e-12)

	assert.InDelta(t, 1.0, UpperTail(0, 20, 0.3), 1e-12)
	assert.InDelta(t, 1.0, UpperTail(-3, 20, 0.3), 1e-12)
	assert.Equal(t, 0.0, UpperTail(21, 20, 0.3))
	assert.Equal(t, 0.0, UpperTail(0, 0, 0.3), "no trials means no exceedance")
	assert.Equal(t, 0.0, UpperTail(1, 10, 1.5))
}

func TestUpperTailMatchesGonumAcrossThreshold(t *testing.T) {
	cases := []struct {
		k, n int
		p    float64
	}{
		{20, 50, 0.153},
		{4, 1500, 1.0 / 600.0},
		{30, LinearTailLimit, 0.002},
		{30, LinearTailLimit + 1, 0.002},
		{3000, 20000, 0.14},
		{1, 50000, 1.0 / 480.0},
	}

	for _, c := range cases {
		ref := distuv.Binomial{N: float64(c.n), P: c.p}
		want := 1 - ref.CDF(float64(c.k-1))
		assert.InDelta(t, want, UpperTail(c.k, c.n, c.p), 1e-8, "UpperTail(%d,%d,%v)", c.k, c.n, c.p)
	}

	assert.Equal(t, 1.0, UpperTail(0, LinearTailLimit+5, 0.1))
}

func BenchmarkUpperTailLinear(b *testing.B) {
	for i := 0; i < b.N; i++ {
		UpperTail(10, 3000, 1.0/480.0)
	}
}
