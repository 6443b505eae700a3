// Package pod implements a self-describing, tagged binary value format
// used to exchange typed parameters between media-processing peers:
// media formats, buffer-negotiation constraints, and keyed property bags.
//
// # Wire Layout
//
// Every pod starts with an 8-byte header and is padded to 8 bytes:
//
//	┌──────────────┬──────────────┬─────────────────┬─────────┐
//	│ size (u32)   │ type (u32)   │ body (size B)   │ padding │
//	└──────────────┴──────────────┴─────────────────┴─────────┘
//
// size counts the body only, excluding header and trailing padding.
// All integers are little-endian (layout.ByteOrder).
//
//	Tag         Body
//	─────────────────────────────────────────────────────────────
//	None        empty
//	Bool        u32 (0 or 1)
//	Id          u32 registry identifier
//	Int         s32
//	Long        s64
//	Float       f32
//	Double      f64
//	String      NUL-terminated bytes
//	Bytes       raw bytes
//	Rectangle   width u32, height u32
//	Fraction    num u32, denom u32
//	Bitmap      raw bits
//	Fd          s64
//	Pointer     type u32, pad u32, value u64
//	Array       child size u32, child type u32, packed elements
//	Struct      concatenated child pods, each padded to 8
//	Choice      mode u32, flags u32, child size u32, child type u32, elements
//	Object      body-type u32, object id u32, properties
//	Sequence    unit u32, pad u32, controls
//	Pod         a nested pod
//
// Array and choice elements are raw bodies without per-element headers,
// spaced at stride = align8(child size). Object properties are
// (key u32, flags u32, value pod); sequence controls are
// (offset u32, type u32, value pod).
//
// # Key Types
//
//	View      - zero-copy read cursor over a received buffer
//	Builder   - append-only writer with back-patched compound headers
//	Value     - materialized tagged-union form of a decoded pod
//
// # Decoding Flow
//
//	v, err := pod.Decode(buf)        // validates the outer header only
//	obj, err := v.AsObject()          // downcast, type_mismatch on wrong tag
//	props := obj.Properties()         // lazy, restartable wire-order iteration
//
// Views borrow the backing buffer for their whole lifetime and never
// copy; the buffer must outlive every derived view and must not be
// mutated while views exist. Nested validation is deferred until a
// child is actually accessed.
//
// # Building Flow
//
//	b := pod.NewBuilder()
//	b.BeginObject(bodyType, 0)
//	b.Property(key, 0)
//	b.WriteID(value)
//	b.EndObject()
//	buf, err := b.Finish()
//
// Begin calls reserve a placeholder header; the matching End call
// back-patches its size with the bytes written since. A failed call
// poisons the builder: Bytes() stays readable for inspection, but every
// further mutation and Finish return the original error. Finish may be
// called exactly once and yields the owned, immutable encoding.
//
// # Thread Safety
//
// Views are immutable and safe for concurrent reads of the same buffer.
// A Builder must be exclusively owned by one writer until finished.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] malformed_pod: declared size 64 exceeds remaining 24 bytes
//	[build] frame_mismatch: want Array, got Object - end call does not match the open frame
package pod
