package bibtex

import "strings"

// InsertCiteKey returns a copy of rec with the annotation prefix+key+suffix
// recorded in the named field, so the key survives re-import into tools that
// regenerate citation keys.
//
// When the field is absent it is appended at the end of the field order with
// the quoted annotation as its value. When it is present it keeps its
// position and the annotation is appended as a new line inside the quoted
// value. An existing value not wrapped in double quotes is treated as opaque
// text and fresh quotes wrap the result.
//
// The operation is not idempotent: each call appends one more annotation
// line. rec itself is never modified.
func InsertCiteKey(rec Record, field, prefix, suffix string) Record {
	note := prefix + rec.Key + suffix
	if cur, ok := rec.Fields.Get(field); ok {
		rec.Fields = rec.Fields.Set(field, `"`+stripQuotes(cur)+"\n"+note+`"`)
		return rec
	}
	rec.Fields = rec.Fields.Set(field, `"`+note+`"`)
	return rec
}

// stripQuotes removes one pair of surrounding double quotes, if present.
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
