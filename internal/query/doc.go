// Package query models external metadata queries (git, go, make) as an
// injectable capability so that callers can be tested with canned results.
package query
