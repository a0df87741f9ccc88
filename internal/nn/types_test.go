package nn

import (
	"math"
	"testing"
)

func TestVectorClone(t *testing.T) {
	v := Vector{1, 2, 3}
	c := v.Clone()

	c[0] = 99
	if v[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestVectorIsValid(t *testing.T) {
	valid := Vector{1, 2, 3}
	if !valid.IsValid() {
		t.Error("expected valid vector")
	}

	nan := Vector{1, math.NaN(), 3}
	if nan.IsValid() {
		t.Error("expected NaN to be invalid")
	}

	inf := Vector{1, math.Inf(1), 3}
	if inf.IsValid() {
		t.Error("expected Inf to be invalid")
	}
}

func TestVectorOps(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	norm := Vector{3, 4}.Norm()
	if math.Abs(norm-5) > 1e-12 {
		t.Errorf("Norm failed: got %f", norm)
	}
}

func TestVectorArgMax(t *testing.T) {
	v := Vector{0.1, 0.7, 0.2}
	if v.ArgMax() != 1 {
		t.Errorf("ArgMax failed: got %d", v.ArgMax())
	}

	single := Vector{0.5}
	if single.ArgMax() != 0 {
		t.Error("ArgMax of single element should be 0")
	}
}

func TestVectorPool(t *testing.T) {
	pool := NewVectorPool(4)

	v1 := pool.Get()
	if len(v1) != 4 {
		t.Errorf("Pool returned wrong size: %d", len(v1))
	}

	v1[0] = 1.0
	v1[1] = 2.0
	pool.Put(v1)

	v2 := pool.Get()
	if v2[0] != 0 || v2[1] != 0 {
		t.Error("Pool did not reset vector")
	}
}

func TestVectorPool_GetAndCopy(t *testing.T) {
	pool := NewVectorPool(3)
	src := Vector{1, 2, 3}

	dst := pool.GetAndCopy(src)
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 3 {
		t.Errorf("GetAndCopy failed: got %v", dst)
	}

	dst[0] = 99
	if src[0] == 99 {
		t.Error("GetAndCopy did not create independent copy")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Epochs <= 0 {
		t.Error("DefaultConfig has invalid Epochs")
	}
	if cfg.BatchSize <= 0 {
		t.Error("DefaultConfig has invalid BatchSize")
	}
	if !cfg.Shuffle {
		t.Error("DefaultConfig should shuffle")
	}
}
