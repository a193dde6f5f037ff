package scanner

import "fmt"

// DeserializeError reports that a serialized state buffer could not be
// parsed, following the teacher's package-local error style (a plain
// struct with a formatted Error() rather than a sentinel or wrapped
// stdlib error). Deserialize never returns this to its caller: per spec
// §4.4 a malformed buffer resets the scanner instead, but tests surface
// the diagnosis via DeserializeDiagnose for debugging.
type DeserializeError struct {
	Offset int
	Reason string
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("scanner: corrupt serialized state at byte %d: %s", e.Offset, e.Reason)
}
