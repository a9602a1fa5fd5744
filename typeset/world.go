package typeset

import "time"

// World is everything the engine may read during a compilation. All methods
// must be safe to call repeatedly and from several goroutines.
type World interface {
	// Library returns the static evaluation scope.
	Library() *Library
	// Book returns the metadata index over all fonts.
	Book() *FontBook
	// Main returns the identifier of the source compilation starts from.
	Main() FileID
	// Source resolves id to source text.
	Source(id FileID) (*Source, error)
	// File resolves id to raw bytes.
	File(id FileID) ([]byte, error)
	// Font returns the font at index, or false when out of range.
	Font(index int) (*Font, bool)
	// Today returns the current date. offset is an optional UTC offset in
	// hours; implementations may ignore it.
	Today(offset *int64) (time.Time, bool)
}
