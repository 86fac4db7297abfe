package booking

// ConflictKind distinguishes why a candidate range is unavailable so callers
// can emit different messages under the same 409-style status.
type ConflictKind string

const (
	ConflictNone        ConflictKind = ""
	ConflictReservation ConflictKind = "reservation_overlap"
	ConflictHostBlock   ConflictKind = "host_block_overlap"
)

func (k ConflictKind) String() string {
	return string(k)
}

// StatusBlocksAvailability reports whether a booking in the given status
// occupies its range. Terminal bookings free the range.
func StatusBlocksAvailability(s Status) bool {
	return s == StatusPending || s == StatusApproved
}

// FindConflict checks a candidate range against occupied reservation ranges
// and host availability blocks. The caller supplies reservation periods
// already filtered to blocking statuses for the property. Host blocks behave
// as permanent occupants and reject the candidate regardless of status.
func FindConflict(candidate StayPeriod, reservations, blocks []StayPeriod) ConflictKind {
	for _, r := range reservations {
		if candidate.Overlaps(r) {
			return ConflictReservation
		}
	}
	for _, b := range blocks {
		if candidate.Overlaps(b) {
			return ConflictHostBlock
		}
	}
	return ConflictNone
}

func IsAvailable(candidate StayPeriod, reservations, blocks []StayPeriod) bool {
	return FindConflict(candidate, reservations, blocks) == ConflictNone
}
