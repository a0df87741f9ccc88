package fid_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aitechroberts/deep-learning/internal/fid"
)

func mustSummary(mu, sigma []float64) *fid.Summary {
	s, err := fid.NewSummary(mu, sigma)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Distance", func() {
	It("is zero for identical summaries", func() {
		a := mustSummary(
			[]float64{0.5, -0.3},
			[]float64{
				1.0, 0.2,
				0.2, 0.8,
			},
		)

		d, err := fid.Distance(a, a)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically("~", 0, 1e-9))
	})

	It("is symmetric", func() {
		a := mustSummary(
			[]float64{0, 0},
			[]float64{
				1.0, 0.3,
				0.3, 1.0,
			},
		)
		b := mustSummary(
			[]float64{1, -1},
			[]float64{
				2.0, 0.6,
				0.6, 2.0,
			},
		)

		dab, err := fid.Distance(a, b)
		Expect(err).NotTo(HaveOccurred())
		dba, err := fid.Distance(b, a)
		Expect(err).NotTo(HaveOccurred())
		Expect(dab).To(BeNumerically("~", dba, 1e-9))
	})

	It("reduces to the squared mean distance for identity covariances", func() {
		identity := []float64{
			1, 0,
			0, 1,
		}
		a := mustSummary([]float64{0, 0}, identity)
		b := mustSummary([]float64{3, 4}, identity)

		d, err := fid.Distance(a, b)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically("~", 25, 1e-9))
	})

	It("matches the closed form for diagonal covariances", func() {
		// For diagonal Sa, Sb: FID = ||dmu||^2 + sum_i (sqrt(a_i) - sqrt(b_i))^2.
		a := mustSummary(
			[]float64{1, 2, 3},
			[]float64{
				4, 0, 0,
				0, 9, 0,
				0, 0, 1,
			},
		)
		b := mustSummary(
			[]float64{1, 2, 3},
			[]float64{
				1, 0, 0,
				0, 4, 0,
				0, 0, 16,
			},
		)

		want := math.Pow(2-1, 2) + math.Pow(3-2, 2) + math.Pow(1-4, 2)
		d, err := fid.Distance(a, b)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically("~", want, 1e-9))
	})

	It("rejects mismatched dimensions", func() {
		a := mustSummary([]float64{0, 0}, []float64{1, 0, 0, 1})
		b := mustSummary([]float64{0, 0, 0}, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})

		_, err := fid.Distance(a, b)
		Expect(err).To(MatchError(fid.ErrDimensionMismatch))
	})

	It("rejects covariances with negative eigenvalues", func() {
		// Symmetric but indefinite: eigenvalues 3 and -1.
		bad := mustSummary([]float64{0, 0}, []float64{
			1, 2,
			2, 1,
		})
		good := mustSummary([]float64{0, 0}, []float64{1, 0, 0, 1})

		_, err := fid.Distance(bad, good)
		Expect(err).To(MatchError(fid.ErrNotPSD))
	})
})

var _ = Describe("NewSummary", func() {
	It("rejects a covariance of the wrong size", func() {
		_, err := fid.NewSummary([]float64{0, 0}, []float64{1, 0, 0})
		Expect(err).To(MatchError(fid.ErrDimensionMismatch))
	})

	It("rejects an asymmetric covariance", func() {
		_, err := fid.NewSummary([]float64{0, 0}, []float64{
			1.0, 0.5,
			0.2, 1.0,
		})
		Expect(err).To(MatchError(fid.ErrNotSymmetric))
	})
})

var _ = Describe("FromSamples", func() {
	It("computes mean and covariance of a sample set", func() {
		rows := [][]float64{
			{1, 2},
			{3, 4},
			{5, 6},
		}

		s, err := fid.FromSamples(rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Mu).To(HaveLen(2))
		Expect(s.Mu[0]).To(BeNumerically("~", 3, 1e-12))
		Expect(s.Mu[1]).To(BeNumerically("~", 4, 1e-12))

		// Sample variance (n-1 denominator) of {1,3,5} is 4.
		Expect(s.Sigma.At(0, 0)).To(BeNumerically("~", 4, 1e-12))
		Expect(s.Sigma.At(0, 1)).To(BeNumerically("~", 4, 1e-12))
	})

	It("distances a set against its own summary as zero", func() {
		rows := [][]float64{
			{0.1, -0.2, 0.3},
			{-0.4, 0.5, 0.0},
			{0.2, 0.1, -0.3},
			{0.0, -0.1, 0.4},
		}

		s, err := fid.FromSamples(rows)
		Expect(err).NotTo(HaveOccurred())

		d, err := fid.Distance(s, s)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically("~", 0, 1e-9))
	})

	It("needs at least two samples", func() {
		_, err := fid.FromSamples([][]float64{{1, 2}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects ragged rows", func() {
		_, err := fid.FromSamples([][]float64{{1, 2}, {3}})
		Expect(err).To(MatchError(fid.ErrDimensionMismatch))
	})
})

var _ = Describe("Demo comparison", func() {
	It("scores fake set I closer to the reference than fake set II", func() {
		ref, fakeI, fakeII, err := fid.DemoSummaries()
		Expect(err).NotTo(HaveOccurred())

		fidI, err := fid.Distance(ref, fakeI)
		Expect(err).NotTo(HaveOccurred())
		fidII, err := fid.Distance(ref, fakeII)
		Expect(err).NotTo(HaveOccurred())

		Expect(fidI).To(BeNumerically(">", 0))
		Expect(fidII).To(BeNumerically(">", 0))
		Expect(fidI).To(BeNumerically("<", fidII))
	})

	It("names the winning set", func() {
		Expect(fid.Verdict(0.06, 5.4)).To(Equal("Based on FID score, Fake Image Set I is better"))
		Expect(fid.Verdict(5.4, 0.06)).To(Equal("Based on FID score, Fake Image Set II is better"))
	})
})
