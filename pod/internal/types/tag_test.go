package types

import "testing"

func TestTagString(t *testing.T) {
	tests := []struct {
		tag      Tag
		expected string
	}{
		{TagNone, "None"},
		{TagBool, "Bool"},
		{TagID, "Id"},
		{TagInt, "Int"},
		{TagLong, "Long"},
		{TagFloat, "Float"},
		{TagDouble, "Double"},
		{TagString, "String"},
		{TagBytes, "Bytes"},
		{TagRectangle, "Rectangle"},
		{TagFraction, "Fraction"},
		{TagBitmap, "Bitmap"},
		{TagArray, "Array"},
		{TagStruct, "Struct"},
		{TagObject, "Object"},
		{TagSequence, "Sequence"},
		{TagPointer, "Pointer"},
		{TagFd, "Fd"},
		{TagChoice, "Choice"},
		{TagPod, "Pod"},
		{ObjectStart + 3, "Object(0x40003)"},
		{Tag(0x999), "Tag(0x999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.expected {
				t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.expected)
			}
		})
	}
}

func TestTagFixedSize(t *testing.T) {
	tests := []struct {
		tag  Tag
		size uint32
		ok   bool
	}{
		{TagNone, 0, true},
		{TagBool, 4, true},
		{TagID, 4, true},
		{TagInt, 4, true},
		{TagLong, 8, true},
		{TagFloat, 4, true},
		{TagDouble, 8, true},
		{TagRectangle, 8, true},
		{TagFraction, 8, true},
		{TagFd, 8, true},
		{TagPointer, 16, true},
		{TagString, 0, false},
		{TagBytes, 0, false},
		{TagBitmap, 0, false},
		{TagArray, 0, false},
		{TagStruct, 0, false},
		{TagObject, 0, false},
		{TagChoice, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			size, ok := tt.tag.FixedSize()
			if size != tt.size || ok != tt.ok {
				t.Errorf("FixedSize() = (%d, %v), want (%d, %v)", size, ok, tt.size, tt.ok)
			}
		})
	}
}

func TestTagIsCompound(t *testing.T) {
	compound := []Tag{TagArray, TagStruct, TagObject, TagSequence, TagChoice, ObjectStart + 2}
	for _, tag := range compound {
		if !tag.IsCompound() {
			t.Errorf("%v.IsCompound() = false, want true", tag)
		}
	}

	scalar := []Tag{TagNone, TagBool, TagInt, TagString, TagBytes, TagFd, TagPod}
	for _, tag := range scalar {
		if tag.IsCompound() {
			t.Errorf("%v.IsCompound() = true, want false", tag)
		}
	}
}

func TestTagIsObjectType(t *testing.T) {
	if TagObject.IsObjectType() {
		t.Error("base Object tag is not an object body-type identifier")
	}
	if !(ObjectStart + 1).IsObjectType() {
		t.Error("identifiers past ObjectStart are object body types")
	}
}

func TestChoiceModeString(t *testing.T) {
	tests := []struct {
		mode     ChoiceMode
		expected string
	}{
		{ChoiceNone, "None"},
		{ChoiceRange, "Range"},
		{ChoiceStep, "Step"},
		{ChoiceEnum, "Enum"},
		{ChoiceFlags, "Flags"},
		{ChoiceMode(9), "ChoiceMode(9)"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("ChoiceMode(%d).String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestChoiceModeValid(t *testing.T) {
	for m := ChoiceNone; m <= ChoiceFlags; m++ {
		if !m.Valid() {
			t.Errorf("ChoiceMode(%d).Valid() = false, want true", m)
		}
	}
	if ChoiceMode(5).Valid() {
		t.Error("ChoiceMode(5).Valid() = true, want false")
	}
}

func TestChoiceModeMinAlternatives(t *testing.T) {
	tests := []struct {
		mode ChoiceMode
		want int
	}{
		{ChoiceNone, 0},
		{ChoiceRange, 2},
		{ChoiceStep, 3},
		{ChoiceEnum, 0},
		{ChoiceFlags, 0},
	}
	for _, tt := range tests {
		if got := tt.mode.MinAlternatives(); got != tt.want {
			t.Errorf("%v.MinAlternatives() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}
