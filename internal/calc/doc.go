// Package calc holds the demo arithmetic used by the go-template binary.
package calc
