package layout

import "encoding/binary"

const (
	// HeaderSize is the fixed pod header: u32 body size, u32 type tag.
	HeaderSize = 8

	// Alignment is the boundary every pod body is padded to.
	Alignment = 8
)

// ByteOrder is the byte order of every integer field on the wire. The
// format only requires writer and reader to agree; this codec fixes
// little-endian so captures are portable between deployments.
var ByteOrder binary.ByteOrder = binary.LittleEndian

// Align rounds n up to the next Alignment boundary.
func Align(n uint32) uint32 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// Pad returns how many zero bytes follow a body of the given size.
func Pad(n uint32) uint32 {
	return Align(n) - n
}

// Stride is the distance between consecutive elements of an array or
// choice body.
func Stride(childSize uint32) uint32 {
	return Align(childSize)
}

// WireSize is the total on-wire footprint of a pod with the given body
// size: header plus padded body.
func WireSize(bodySize uint32) uint32 {
	return HeaderSize + Align(bodySize)
}
