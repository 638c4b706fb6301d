// Package analysis implements the six essay analyzers. Each analyzer is a pure
// function over its input strings and the fixed dictionaries in this package;
// none keeps state between calls, so any number of calls may run concurrently.
package analysis

import "errors"

// ErrNoWords is returned when the input has nothing an analyzer can measure.
var ErrNoWords = errors.New("no analyzable words")
