// Package param carries the externally defined numeric registry used by
// pod objects: body types, property keys, parameter ids, and well-known
// media identifiers. The codec treats all of these as opaque constants;
// the name tables exist for formatting and debugging only and are never
// verified for domain meaning.
package param
