package tensor

import (
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{1, 1, 4, 4}, 16},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4, 5}.ComputeStrides()
	want := []int{60, 20, 5, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("ComputeStrides = %v, want %v", strides, want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -1}, Float32); err == nil {
		t.Error("expected error for invalid shape")
	}
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if raw.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", raw.DType())
	}
	data := raw.AsFloat32()
	for i := 0; i < 6; i++ {
		if data[i] != float32(i+1) {
			t.Errorf("data[%d] = %f, want %d", i, data[i], i+1)
		}
	}
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float64{1, 2, 3}, Shape{2, 3}); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestFull(t *testing.T) {
	raw := Full(Shape{2, 2}, 3.5)
	if raw.DType() != Float64 {
		t.Errorf("dtype = %s, want float64", raw.DType())
	}
	for i, v := range raw.AsFloat64() {
		if v != 3.5 {
			t.Errorf("data[%d] = %f, want 3.5", i, v)
		}
	}
}

func TestData_DTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on dtype mismatch")
		}
	}()
	raw := Zeros(Shape{2}, Float32)
	_ = Data[float64](raw)
}

func TestClone_IsDeep(t *testing.T) {
	raw, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{4})
	clone := raw.Clone()
	clone.AsFloat32()[0] = 99

	if raw.AsFloat32()[0] != 1 {
		t.Error("Clone shares memory with original")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("Clone shape %v != %v", clone.Shape(), raw.Shape())
	}
}
