package algebra

import (
	"fmt"
	"sync"

	"github.com/aces-fhe/aces/aces"
	"github.com/aces-fhe/aces/errs"
	"github.com/aces-fhe/aces/ring"
)

// Mult returns c1 * c2 via the channel's 3-tensor. The exact
// coefficients are derived from expanding
// (c1' - c1^T.x)*(c2' - c2^T.x) using x_i.x_j = sum_k lambda_{i,j}^k.x_k
// with the x_0 = 1 convention:
//
//	c3_k  = c1_k.c2' + c2_k.c1' - sum_{i,j} lambda_{i,j}^k.(c1_i.c2_j)   for k = 1..n
//	c3'   = c1'.c2'            + sum_{i,j} lambda_{i,j}^0.(c1_i.c2_j)
//
// Level growth is u3 = p.u1.u2, reflecting the bilinear form's
// multiplicative blow-up.
func (a *Algebra) Mult(c1, c2 *aces.Ciphertext) *aces.Ciphertext {
	n := len(c1.C)
	if n != len(c2.C) {
		panic(&errs.ArithmeticError{Reason: fmt.Sprintf("mult: ciphertexts have %d and %d components", n, len(c2.C))})
	}
	r := a.ring()
	tensor := a.Pub.TensorData

	products := make([][]*ring.Poly, n)
	for i := 0; i < n; i++ {
		products[i] = make([]*ring.Poly, n)
		for j := 0; j < n; j++ {
			products[i][j] = r.Mul(c1.C[i], c2.C[j])
		}
	}

	c3 := make([]*ring.Poly, n)
	var wg sync.WaitGroup
	jobs := make(chan int, n)
	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)

	workers := workerCount(n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				acc := r.Add(r.Mul(c1.C[k], c2.Cp), r.Mul(c2.C[k], c1.Cp))
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						lambda := tensor.Entry(i+1, j+1, k+1)
						if lambda == 0 {
							continue
						}
						term := r.ScalarMul(products[i][j], lambda)
						acc = r.Sub(acc, term)
					}
				}
				c3[k] = acc
			}
		}()
	}
	wg.Wait()

	cp := r.Mul(c1.Cp, c2.Cp)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			lambda := tensor.Entry(i+1, j+1, 0)
			if lambda == 0 {
				continue
			}
			cp = r.Add(cp, r.ScalarMul(products[i][j], lambda))
		}
	}

	return &aces.Ciphertext{
		C:     c3,
		Cp:    cp,
		UpLvl: a.Pub.Params.P() * c1.UpLvl * c2.UpLvl,
	}
}
