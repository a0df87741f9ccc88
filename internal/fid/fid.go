// Package fid computes the Fréchet distance between Gaussian summaries of two
// sample sets: ||mu_a - mu_b||^2 + Tr(Sa + Sb - 2*sqrtm(Sa*Sb)).
package fid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Eigenvalues above -psdTol (relative to the largest) are clamped to zero;
// anything more negative means the matrix is not a covariance.
const psdTol = 1e-10

var (
	ErrDimensionMismatch = errors.New("fid: summaries have different dimensions")
	ErrNotSymmetric      = errors.New("fid: covariance matrix is not symmetric")
	ErrNotPSD            = errors.New("fid: covariance matrix is not positive semi-definite")
)

// Summary is a Gaussian summary of a sample set: mean vector and covariance.
type Summary struct {
	Mu    []float64
	Sigma *mat.SymDense
}

func (s *Summary) Dim() int { return len(s.Mu) }

// NewSummary builds a summary from a mean vector and a row-major dim*dim
// covariance, verifying symmetry.
func NewSummary(mu []float64, sigma []float64) (*Summary, error) {
	dim := len(mu)
	if len(sigma) != dim*dim {
		return nil, fmt.Errorf("covariance has %d entries, want %d: %w",
			len(sigma), dim*dim, ErrDimensionMismatch)
	}

	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			if math.Abs(sigma[i*dim+j]-sigma[j*dim+i]) > 1e-9 {
				return nil, fmt.Errorf("entry (%d,%d) != (%d,%d): %w", i, j, j, i, ErrNotSymmetric)
			}
		}
	}

	return &Summary{Mu: append([]float64(nil), mu...), Sigma: mat.NewSymDense(dim, sigma)}, nil
}

// FromSamples computes the sample mean and covariance of rows.
func FromSamples(rows [][]float64) (*Summary, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("fid: need at least 2 samples, got %d", len(rows))
	}
	dim := len(rows[0])

	data := make([]float64, 0, len(rows)*dim)
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("sample %d has dim %d, want %d: %w", i, len(r), dim, ErrDimensionMismatch)
		}
		data = append(data, r...)
	}
	x := mat.NewDense(len(rows), dim, data)

	mu := make([]float64, dim)
	for j := 0; j < dim; j++ {
		mu[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}

	sigma := mat.NewSymDense(dim, nil)
	stat.CovarianceMatrix(sigma, x, nil)

	return &Summary{Mu: mu, Sigma: sigma}, nil
}

// Distance returns the Fréchet distance between two Gaussian summaries.
// The cross term Tr(sqrtm(Sa*Sb)) is evaluated through the symmetric form
// sqrtm(sqrt(Sa)*Sb*sqrt(Sa)), which has the same eigenvalues.
func Distance(a, b *Summary) (float64, error) {
	if a.Dim() != b.Dim() {
		return 0, fmt.Errorf("dim %d vs %d: %w", a.Dim(), b.Dim(), ErrDimensionMismatch)
	}
	dim := a.Dim()

	d2 := 0.0
	for i := 0; i < dim; i++ {
		diff := a.Mu[i] - b.Mu[i]
		d2 += diff * diff
	}

	sqrtA, err := sqrtPSD(a.Sigma)
	if err != nil {
		return 0, err
	}

	// inner = sqrt(Sa) * Sb * sqrt(Sa), symmetric PSD by construction.
	var tmp, innerDense mat.Dense
	tmp.Mul(sqrtA, b.Sigma)
	innerDense.Mul(&tmp, sqrtA)
	inner := symmetrize(&innerDense)

	trCross, err := traceSqrt(inner)
	if err != nil {
		return 0, err
	}

	return d2 + mat.Trace(a.Sigma) + mat.Trace(b.Sigma) - 2*trCross, nil
}

// sqrtPSD computes the principal square root of a symmetric PSD matrix via
// eigendecomposition.
func sqrtPSD(s *mat.SymDense) (*mat.Dense, error) {
	n := s.SymmetricDim()

	var es mat.EigenSym
	if !es.Factorize(s, true) {
		return nil, fmt.Errorf("fid: eigendecomposition failed")
	}

	vals := es.Values(nil)
	clamped, err := clampEigenvalues(vals)
	if err != nil {
		return nil, err
	}
	for i := range clamped {
		clamped[i] = math.Sqrt(clamped[i])
	}

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	var tmp, out mat.Dense
	tmp.Mul(&vecs, mat.NewDiagDense(n, clamped))
	out.Mul(&tmp, vecs.T())
	return &out, nil
}

// traceSqrt returns the trace of the principal square root of a symmetric
// PSD matrix, without reconstructing the root.
func traceSqrt(s *mat.SymDense) (float64, error) {
	var es mat.EigenSym
	if !es.Factorize(s, false) {
		return 0, fmt.Errorf("fid: eigendecomposition failed")
	}

	vals, err := clampEigenvalues(es.Values(nil))
	if err != nil {
		return 0, err
	}

	tr := 0.0
	for _, v := range vals {
		tr += math.Sqrt(v)
	}
	return tr, nil
}

func clampEigenvalues(vals []float64) ([]float64, error) {
	maxVal := 0.0
	for _, v := range vals {
		if v > maxVal {
			maxVal = v
		}
	}
	tol := psdTol
	if maxVal > 1 {
		tol *= maxVal
	}

	out := make([]float64, len(vals))
	for i, v := range vals {
		if v < -tol {
			return nil, fmt.Errorf("eigenvalue %g: %w", v, ErrNotPSD)
		}
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out, nil
}

// symmetrize averages a nearly-symmetric dense matrix into a SymDense,
// absorbing floating-point asymmetry from the matrix products.
func symmetrize(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(d.At(i, j)+d.At(j, i)))
		}
	}
	return s
}
