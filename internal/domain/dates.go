package domain

import "time"

// ISODateLayout is the storage/edit format for all date fields.
const ISODateLayout = "2006-01-02"

// ShortDateLayout is the presentation format required at the AI boundary
// and in generated summaries: zero-padded MM/DD/YY.
const ShortDateLayout = "01/02/06"

// ParseISODate parses a stored YYYY-MM-DD value.
func ParseISODate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatShortDate converts a stored ISO date to MM/DD/YY. Values that do not
// parse (including empty strings) pass through unchanged: the boundary never
// rejects free text, it only normalizes what it can.
func FormatShortDate(iso string) string {
	t, ok := ParseISODate(iso)
	if !ok {
		return iso
	}
	return t.Format(ShortDateLayout)
}

// ShortDate formats a time as MM/DD/YY.
func ShortDate(t time.Time) string {
	return t.Format(ShortDateLayout)
}
