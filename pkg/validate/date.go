package validate

import "time"

const ISODateLayout = "2006-01-02"

// IsISODate reports whether value is a calendar date in YYYY-MM-DD form.
func IsISODate(value string) bool {
	if len(value) != len(ISODateLayout) {
		return false
	}
	_, err := time.Parse(ISODateLayout, value)
	return err == nil
}
