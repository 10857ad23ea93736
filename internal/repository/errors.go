package repository

import "errors"

// Sentinel errors returned by workflow store operations. The service layer
// maps these onto the application error taxonomy.
var (
	// ErrNotSubmittable is returned when a submission is attempted while the
	// drawing is not in draft, rejected or revision_requested
	ErrNotSubmittable = errors.New("drawing is not in a submittable status")

	// ErrNoCurrentSubmission is returned when a review is attempted on a
	// drawing that has never been submitted
	ErrNoCurrentSubmission = errors.New("drawing has no current submission")

	// ErrNotReadyForClient is returned when opening client review on a
	// drawing whose status is not ready_for_client_review
	ErrNotReadyForClient = errors.New("drawing is not ready for client review")

	// ErrIllegalTransition is returned from a ReviewFunc when the requested
	// decision is not in the state table for the drawing's current status
	ErrIllegalTransition = errors.New("review transition is not legal for current status")
)
