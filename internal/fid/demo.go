package fid

// Built-in demo: two synthetic "fake image set" summaries compared against a
// reference. Set I shares the reference's correlation structure with a small
// mean shift; set II is shifted and inflated.

var (
	demoMuReal = []float64{0.0, 0.0, 0.0, 0.0}

	demoSigmaReal = []float64{
		1.0, 0.3, 0.1, 0.0,
		0.3, 1.0, 0.3, 0.1,
		0.1, 0.3, 1.0, 0.3,
		0.0, 0.1, 0.3, 1.0,
	}

	demoMuFakeI = []float64{0.2, 0.1, 0.0, -0.1}

	demoSigmaFakeI = []float64{
		1.1, 0.3, 0.1, 0.0,
		0.3, 1.1, 0.3, 0.1,
		0.1, 0.3, 1.1, 0.3,
		0.0, 0.1, 0.3, 1.1,
	}

	demoMuFakeII = []float64{1.5, 1.2, -0.8, 0.6}

	demoSigmaFakeII = []float64{
		2.0, 0.6, 0.2, 0.0,
		0.6, 2.0, 0.6, 0.2,
		0.2, 0.6, 2.0, 0.6,
		0.0, 0.2, 0.6, 2.0,
	}
)

// DemoSummaries returns the reference and the two fake-set summaries.
func DemoSummaries() (ref, fakeI, fakeII *Summary, err error) {
	ref, err = NewSummary(demoMuReal, demoSigmaReal)
	if err != nil {
		return nil, nil, nil, err
	}
	fakeI, err = NewSummary(demoMuFakeI, demoSigmaFakeI)
	if err != nil {
		return nil, nil, nil, err
	}
	fakeII, err = NewSummary(demoMuFakeII, demoSigmaFakeII)
	if err != nil {
		return nil, nil, nil, err
	}
	return ref, fakeI, fakeII, nil
}

// Verdict names the fake set with the lower distance to the reference.
func Verdict(fidI, fidII float64) string {
	if fidI < fidII {
		return "Based on FID score, Fake Image Set I is better"
	}
	return "Based on FID score, Fake Image Set II is better"
}
