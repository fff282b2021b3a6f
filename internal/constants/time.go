package constants

const (
	// DateFormat is the canonical day key (YYYY-MM-DD). Day strings are
	// compared and sorted lexicographically, so the format must keep
	// chronological and lexical order aligned.
	DateFormat = "2006-01-02"

	// TimeFormat renders clock times in session listings (HH:MM).
	TimeFormat = "15:04"
)
