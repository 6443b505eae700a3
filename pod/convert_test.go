package pod

import (
	"math"
	"testing"

	"github.com/podwire/podcodec/errors"
)

type mediaType uint32

func TestIDAs(t *testing.T) {
	b := NewBuilder()
	if err := b.WriteID(2); err != nil {
		t.Fatalf("WriteID() error = %v", err)
	}
	v := mustDecode(t, mustFinish(t, b))

	got, err := IDAs[mediaType](v)
	if err != nil {
		t.Fatalf("IDAs() error = %v", err)
	}
	if got != mediaType(2) {
		t.Errorf("IDAs() = %d, want 2", got)
	}

	if id := IDOf(mediaType(5)); id != ID(5) {
		t.Errorf("IDOf() = %v, want ID(5)", id)
	}
}

func TestIDAsTypeMismatch(t *testing.T) {
	b := NewBuilder()
	if err := b.WriteInt(2); err != nil {
		t.Fatalf("WriteInt() error = %v", err)
	}
	v := mustDecode(t, mustFinish(t, b))

	if _, err := IDAs[mediaType](v); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Fatalf("IDAs() error = %v, want type_mismatch", err)
	}
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    int32
		errKind errors.Kind
	}{
		{name: "int", v: Int(-5), want: -5},
		{name: "long in range", v: Long(100), want: 100},
		{name: "long max", v: Long(math.MaxInt32), want: math.MaxInt32},
		{name: "long overflow", v: Long(math.MaxInt32 + 1), errKind: errors.KindOverflow},
		{name: "long underflow", v: Long(math.MinInt32 - 1), errKind: errors.KindOverflow},
		{name: "wrong type", v: String("5"), errKind: errors.KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt32(tt.v)
			if tt.errKind != "" {
				if !errors.IsKind(err, tt.errKind) {
					t.Fatalf("ToInt32() error = %v, want %s", err, tt.errKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToInt32() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToInt32() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	if got, err := ToInt64(Int(-1)); err != nil || got != -1 {
		t.Errorf("ToInt64(Int) = %d, %v, want -1, nil", got, err)
	}
	if got, err := ToInt64(Long(1 << 40)); err != nil || got != 1<<40 {
		t.Errorf("ToInt64(Long) = %d, %v, want 1<<40, nil", got, err)
	}
	if _, err := ToInt64(Float(1)); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("ToInt64(Float) error = %v, want type_mismatch", err)
	}
}

func TestToUint32(t *testing.T) {
	if got, err := ToUint32(ID(7)); err != nil || got != 7 {
		t.Errorf("ToUint32(ID) = %d, %v, want 7, nil", got, err)
	}
	if got, err := ToUint32(Int(7)); err != nil || got != 7 {
		t.Errorf("ToUint32(Int) = %d, %v, want 7, nil", got, err)
	}
	if _, err := ToUint32(Int(-1)); !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("ToUint32(-1) error = %v, want overflow", err)
	}
	if _, err := ToUint32(Long(7)); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("ToUint32(Long) error = %v, want type_mismatch", err)
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		v    Value
		want float64
	}{
		{Float(0.5), 0.5},
		{Double(2.25), 2.25},
		{Int(3), 3},
		{Long(4), 4},
	}
	for _, tt := range tests {
		got, err := ToFloat64(tt.v)
		if err != nil || got != tt.want {
			t.Errorf("ToFloat64(%#v) = %g, %v, want %g, nil", tt.v, got, err, tt.want)
		}
	}
	if _, err := ToFloat64(String("x")); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("ToFloat64(String) error = %v, want type_mismatch", err)
	}
}

func TestToBoolAndToString(t *testing.T) {
	if got, err := ToBool(Bool(true)); err != nil || !got {
		t.Errorf("ToBool() = %t, %v, want true, nil", got, err)
	}
	if _, err := ToBool(Int(1)); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("ToBool(Int) error = %v, want type_mismatch", err)
	}
	if got, err := ToString(String("x")); err != nil || got != "x" {
		t.Errorf("ToString() = %q, %v, want x, nil", got, err)
	}
	if _, err := ToString(nil); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("ToString(nil) error = %v, want type_mismatch", err)
	}
}
