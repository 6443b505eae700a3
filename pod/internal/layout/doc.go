// Package layout holds the wire arithmetic of the pod format: header
// size, the 8-byte alignment rule, element strides, and the byte order
// shared by reader and writer.
package layout
