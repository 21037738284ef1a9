// Package parallel runs batches of independent tasks on a fixed set of
// worker goroutines.
package parallel
