package utils

import "time"

func FormatBoolean(yesno bool, yes string, no string) string {
	if yesno {
		return yes
	}
	return no
}

// FormatTimeIn renders an optional instant in loc, or "" for nil.
func FormatTimeIn(t *time.Time, loc *time.Location, layout string) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(layout)
}
