package channel

import (
	"math/bits"

	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/ring"
)

// Tensor holds lambda[i][j][k], the integers such that
// x_i * x_j = lambda[i][j][0]*1 + sum_{k=1}^n lambda[i][j][k]*x_k
// inside Z_q[X]/(u). Indices i, j run over 1..Degree (stored 0-based as
// 0..Degree-1); the k axis runs over 0..Degree, with k=0 the coefficient
// of the constant polynomial 1 per the x_0=1 convention the mult formula
// relies on.
type Tensor struct {
	Degree int
	Lambda [][][]uint64
}

// Entry returns lambda_{i,j}^k for 1-based i, j (matching the scheme's
// 1-indexed secret-key components) and 0-based k.
func (t *Tensor) Entry(i, j, k int) uint64 {
	return t.Lambda[i-1][j-1][k]
}

// extendedGCD returns (g, a, b) such that a*x + b*y = g = gcd(x, y), the
// same construction pyaces/arith.py's extended_gcd implements, adapted to
// int64 for the pivot-inversion step in the tensor solve below.
func extendedGCD(x, y int64) (g, a, b int64) {
	oldR, r := x, y
	oldS, s := int64(1), int64(0)
	oldT, t := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
		oldT, t = t, oldT-q*t
	}
	return oldR, oldS, oldT
}

// modInverse returns the inverse of a mod q, or ok=false if gcd(a, q) != 1
// — the basis-is-singular case the tensor solve below must report rather
// than guess through.
func modInverse(a, q uint64) (inv uint64, ok bool) {
	if a == 0 {
		return 0, false
	}
	g, x, _ := extendedGCD(int64(a%q), int64(q))
	if g != 1 && g != -1 {
		return 0, false
	}
	r := x % int64(q)
	if r < 0 {
		r += int64(q)
	}
	if g == -1 {
		r = (int64(q) - r) % int64(q)
	}
	return uint64(r), true
}

func addModQ(a, b, q uint64) uint64 {
	s := a + b
	if s >= q || s < a {
		s -= q
	}
	return s
}

func subModQ(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

func mulModQ(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// solveSquareSystem solves m*w = rhs over Z_q by Gaussian elimination with
// row pivoting, inverting pivots via modInverse. Reports a singular
// system rather than guessing.
func solveSquareSystem(m [][]uint64, rhs []uint64, q uint64) ([]uint64, bool) {
	n := len(rhs)
	// augmented copy so the caller's matrix is untouched
	a := make([][]uint64, n)
	for i := range a {
		a[i] = make([]uint64, n+1)
		copy(a[i], m[i])
		a[i][n] = rhs[i]
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		var pivotInv uint64
		for row := col; row < n; row++ {
			if inv, ok := modInverse(a[row][col], q); ok {
				pivotRow, pivotInv = row, inv
				break
			}
		}
		if pivotRow < 0 {
			return nil, false
		}
		a[col], a[pivotRow] = a[pivotRow], a[col]

		for k := col; k <= n; k++ {
			a[col][k] = mulModQ(a[col][k], pivotInv, q)
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := a[row][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				a[row][k] = subModQ(a[row][k], mulModQ(factor, a[col][k], q), q)
			}
		}
	}

	w := make([]uint64, n)
	for i := 0; i < n; i++ {
		w[i] = a[i][n]
	}
	return w, true
}

// solveTensorEntry decomposes target (the reduced product x_i*x_j) over
// the candidate basis [1, x_1, ..., x_n]. Because those n+1 vectors live
// in an n-dimensional coefficient space, the decomposition is generically
// non-unique; this implementation fixes it by dropping exactly one
// candidate column — trying the constant slot first, then each x_k in
// turn — until the remaining n columns form an invertible matrix, and
// assigns the dropped coefficient 0. The extra constant slot covers the
// x_0=1 virtual component the mult identity needs.
func solveTensorEntry(x []*ring.Poly, degree int, q uint64, target *ring.Poly) ([]uint64, error) {
	columns := make([]*ring.Poly, degree+1)
	onePoly := ring.NewPoly(degree)
	onePoly.Coeffs[0] = 1
	columns[0] = onePoly
	for k := 0; k < degree; k++ {
		columns[k+1] = x[k]
	}

	for drop := 0; drop <= degree; drop++ {
		idxs := make([]int, 0, degree)
		for i := 0; i <= degree; i++ {
			if i != drop {
				idxs = append(idxs, i)
			}
		}
		m := make([][]uint64, degree)
		for row := 0; row < degree; row++ {
			m[row] = make([]uint64, degree)
			for pos, idx := range idxs {
				m[row][pos] = columns[idx].Coeffs[row]
			}
		}
		w, ok := solveSquareSystem(m, target.Coeffs, q)
		if !ok {
			continue
		}
		lambda := make([]uint64, degree+1)
		for pos, idx := range idxs {
			lambda[idx] = w[pos]
		}
		lambda[drop] = 0
		return lambda, nil
	}
	return nil, &errs.GenerationError{Reason: "tensor solve: no invertible basis among [1, x_1..x_n]"}
}

// BuildTensor computes lambda_{i,j}^k for every 1 <= i <= j <= n (and
// mirrors j,i by commutativity of ring multiplication).
func BuildTensor(r *ring.Ring, x []*ring.Poly) (*Tensor, error) {
	n := r.N
	lambda := make([][][]uint64, n)
	for i := range lambda {
		lambda[i] = make([][]uint64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			p := r.Mul(x[i], x[j])
			entry, err := solveTensorEntry(x, n, r.Q, p)
			if err != nil {
				return nil, err
			}
			lambda[i][j] = entry
			lambda[j][i] = entry
		}
	}
	return &Tensor{Degree: n, Lambda: lambda}, nil
}
