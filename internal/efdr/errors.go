package efdr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingLibraryEntry is returned when an identification's
	// (sequence, charge) key has no record in the entrapment library.
	// Pairing stops at the first missing key: an unlabeled entry would
	// silently corrupt every downstream count.
	ErrMissingLibraryEntry = errors.New("peptide not in entrapment library")

	// ErrLengthMismatch is returned when parallel input columns passed to
	// a vector-based function differ in length.
	ErrLengthMismatch = errors.New("input columns differ in length")
)

// checkLengths validates that all column lengths are equal. Called at API
// boundaries only; inner loops assume the invariant holds.
func checkLengths(ns ...int) error {
	for _, n := range ns[1:] {
		if n != ns[0] {
			return fmt.Errorf("%w: %v", ErrLengthMismatch, ns)
		}
	}
	return nil
}
