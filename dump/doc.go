// Package dump renders decoded pods as indented plain-text trees for
// debugging and tooling. Names for object body-types and property keys
// come from a pluggable Namer; the default resolves them against the
// param registry.
package dump
