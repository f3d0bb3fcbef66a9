// Package resolver derives build metadata from source control and the
// toolchain: the composite version ("1.2.0-3-gde4f567-dirty"), the Go
// compiler version and the build tool version.
//
// Every query may fail. Failures degrade to the base version, an omitted
// segment or the "unknown" sentinel; nothing is ever returned as an error.
package resolver
