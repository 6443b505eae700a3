// Package podcodec implements the POD tagged binary value format used
// for media parameter negotiation and control transport.
//
// Every value on the wire is a pod: an 8-byte header carrying the body
// size and a type tag, followed by the body, zero-padded to an 8-byte
// boundary. Pods are self-delimiting, so compound types nest without a
// schema.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct
// responsibilities:
//
//	podcodec/        Root package, documentation only
//	├── pod/         Core codec: zero-copy views, builder, values
//	├── param/       Registry of object body-types and property keys
//	├── dump/        Plain-text tree rendering for debugging
//	├── errors/      Structured error types for debugging
//	└── cmd/podview/ CLI and TUI pod inspector
//
// # Quick Start
//
// Build a format object and read it back:
//
//	b := pod.NewBuilder()
//	b.BeginObject(param.ObjectFormat, 0)
//	b.Property(param.FormatMediaType, 0)
//	b.WriteID(param.MediaTypeAudio)
//	b.EndObject()
//	buf, err := b.Finish()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	view, err := pod.Decode(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj, _ := view.AsObject()
//
// # Reading Styles
//
// Views borrow the input buffer and decode lazily; they are the right
// tool on hot paths. View.Value materializes an owned tagged-union tree
// when data must outlive the buffer.
//
// # Thread Safety
//
// Views are immutable and safe to share once decoded. A Builder is for
// single-writer use; build on one goroutine and hand off the finished
// bytes.
package podcodec
