// Package bubblesink defines the sink contract the bubble popper
// writes one record to per popped bubble, plus a TSVWriter
// implementation.
package bubblesink
