// Package analytics computes the dashboard's derived tables.
//
// Every function is a pure function of the cleaned records (and, for
// Render, the filter selection): nothing here mutates its input or keeps
// state between calls, so the same call from a handler or a test yields the
// same tables. Rankings break ties by first appearance in the record order.
package analytics
