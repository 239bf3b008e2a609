package domain

// AssertOwner returns ErrForbidden unless requesterID matches ownerID.
func AssertOwner(ownerID, requesterID string) error {
	if ownerID != requesterID {
		return ErrForbidden
	}
	return nil
}
