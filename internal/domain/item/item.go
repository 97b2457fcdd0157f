package item

import "strconv"

// Key identifies a catalog entry by title and release year.
// Two keys are equal iff both fields match, so Key is used directly as a map key.
type Key struct {
	Title string
	Year  int
}

// New creates a Key.
func New(title string, year int) Key {
	return Key{Title: title, Year: year}
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k == Key{} }

// String renders the key as "title (year)".
func (k Key) String() string {
	return k.Title + " (" + strconv.Itoa(k.Year) + ")"
}

// Entry is a catalog entry as seen during iteration.
type Entry struct {
	Key      Key
	Features []float64
}
