package dataset

import (
	"testing"
)

func TestOneHot(t *testing.T) {
	y, err := OneHot(2, 4)
	if err != nil {
		t.Fatalf("OneHot failed: %v", err)
	}
	for i, v := range y {
		want := 0.0
		if i == 2 {
			want = 1.0
		}
		if v != want {
			t.Errorf("element %d: expected %f, got %f", i, want, v)
		}
	}
}

func TestOneHotOutOfRange(t *testing.T) {
	if _, err := OneHot(4, 4); err == nil {
		t.Error("expected error for class == numClasses")
	}
	if _, err := OneHot(-1, 4); err == nil {
		t.Error("expected error for negative class")
	}
}

func TestBlobs(t *testing.T) {
	d, err := Blobs(3, 50, 8, 0.5, 42)
	if err != nil {
		t.Fatalf("Blobs failed: %v", err)
	}

	if d.Len() != 150 {
		t.Errorf("expected 150 samples, got %d", d.Len())
	}
	if d.Dim != 8 || d.NumClasses != 3 {
		t.Errorf("wrong shape: dim %d, classes %d", d.Dim, d.NumClasses)
	}

	counts := d.ClassCounts()
	for c, n := range counts {
		if n != 50 {
			t.Errorf("class %d: expected 50 samples, got %d", c, n)
		}
	}
}

func TestBlobsDeterministic(t *testing.T) {
	a, _ := Blobs(2, 10, 4, 0.5, 7)
	b, _ := Blobs(2, 10, 4, 0.5, 7)

	for i := range a.Samples {
		for j := range a.Samples[i].X {
			if a.Samples[i].X[j] != b.Samples[i].X[j] {
				t.Fatal("same seed should produce identical datasets")
			}
		}
	}

	c, _ := Blobs(2, 10, 4, 0.5, 8)
	same := true
	for i := range a.Samples {
		for j := range a.Samples[i].X {
			if a.Samples[i].X[j] != c.Samples[i].X[j] {
				same = false
			}
		}
	}
	if same {
		t.Error("different seeds should produce different datasets")
	}
}

func TestBlobsInvalidArgs(t *testing.T) {
	if _, err := Blobs(1, 10, 4, 0.5, 1); err == nil {
		t.Error("expected error for single class")
	}
	if _, err := Blobs(2, 0, 4, 0.5, 1); err == nil {
		t.Error("expected error for zero per-class count")
	}
	if _, err := Blobs(2, 10, 0, 0.5, 1); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestSplit(t *testing.T) {
	d, _ := Blobs(2, 50, 4, 0.5, 1)

	train, val := d.Split(0.8)
	if train.Len() != 80 || val.Len() != 20 {
		t.Errorf("expected 80/20 split, got %d/%d", train.Len(), val.Len())
	}

	// Out-of-range fractions are clamped.
	all, none := d.Split(1.5)
	if all.Len() != 100 || none.Len() != 0 {
		t.Errorf("frac > 1 should keep everything: %d/%d", all.Len(), none.Len())
	}
	none, all = d.Split(-0.5)
	if none.Len() != 0 || all.Len() != 100 {
		t.Errorf("frac < 0 should keep nothing: %d/%d", none.Len(), all.Len())
	}
}

func TestSubset(t *testing.T) {
	d, _ := Blobs(2, 50, 4, 0.5, 1)

	sub := d.Subset(10)
	if sub.Len() != 10 {
		t.Errorf("expected 10 samples, got %d", sub.Len())
	}

	over := d.Subset(1000)
	if over.Len() != 100 {
		t.Errorf("oversized subset should clamp: got %d", over.Len())
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a, _ := Blobs(2, 20, 4, 0.5, 1)
	b, _ := Blobs(2, 20, 4, 0.5, 1)

	a.Shuffle(99)
	b.Shuffle(99)

	for i := range a.Samples {
		if a.Samples[i].X[0] != b.Samples[i].X[0] {
			t.Fatal("same shuffle seed should produce identical order")
		}
	}
}
