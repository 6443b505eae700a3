// Package types defines the wire-level type tags and choice modes of the
// pod format. Tag values mirror the external numeric registry and are
// treated as opaque identifiers by the codec; only their structural
// category (fixed-size scalar, variable scalar, compound) matters here.
package types
