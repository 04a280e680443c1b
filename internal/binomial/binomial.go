// Package binomial implements the binomial model used for per-channel
// likelihoods and exceedance probabilities.
package binomial

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// LinearTailLimit is the largest trial count for which UpperTail sums the
// probability mass directly. Above it the regularized incomplete beta is used.
const LinearTailLimit = 10000

// Combination returns n choose k using the multiplicative form over
// min(k, n-k), which keeps intermediate values bounded.
func Combination(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}

	if n-k < k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}

// PMF is the probability of exactly k successes in n trials at rate p.
// Outside the valid domain it returns 0.
func PMF(k, n int, p float64) float64 {
	if k > n || k < 0 || n < 0 || !validRate(p) {
		return 0
	}
	switch p {
	case 0:
		if k == 0 {
			return 1
		}
		return 0
	case 1:
		if k == n {
			return 1
		}
		return 0
	}

	coeff := Combination(n, k)
	if !math.IsInf(coeff, 0) {
		v := coeff * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
		if v != 0 && !math.IsNaN(v) {
			return v
		}
	}
	// coefficient overflowed, or a power underflowed to zero
	return math.Exp(logPMF(k, n, p))
}

func logPMF(k, n int, p float64) float64 {
	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln - lk - lnk + float64(k)*math.Log(p) + float64(n-k)*math.Log1p(-p)
}

// UpperTail is P(X >= k) for X ~ Binomial(n, p). It returns 0 when there are
// no trials or the rate is invalid.
func UpperTail(k, n int, p float64) float64 {
	if n <= 0 || !validRate(p) || k > n {
		return 0
	}
	if k < 0 {
		k = 0
	}

	if n > LinearTailLimit {
		if k == 0 {
			return 1
		}
		return mathext.RegIncBeta(float64(k), float64(n-k+1), p)
	}

	tail := 0.0
	for i := k; i <= n; i++ {
		tail += PMF(i, n, p)
	}
	return tail
}

func validRate(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}
