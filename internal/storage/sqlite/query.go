// ABOUTME: Shared query helpers for date-range filtered listings
// ABOUTME: All record kinds list newest-first with optional inclusive bounds
package sqlite

import "time"

// rangeClause builds the optional WHERE fragment for an inclusive
// [start, end] timestamp range. Bounds are nil when absent.
func rangeClause(start, end *time.Time) (string, []interface{}) {
	var (
		clause string
		args   []interface{}
	)
	switch {
	case start != nil && end != nil:
		clause = " WHERE date >= ? AND date <= ?"
		args = []interface{}{encodeTime(*start), encodeTime(*end)}
	case start != nil:
		clause = " WHERE date >= ?"
		args = []interface{}{encodeTime(*start)}
	case end != nil:
		clause = " WHERE date <= ?"
		args = []interface{}{encodeTime(*end)}
	}
	return clause, args
}
