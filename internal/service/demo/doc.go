// Package demo implements the go-template command: it prints the build
// metadata stamped into the binary and a sample calculation.
package demo
