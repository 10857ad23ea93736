package service

import "drawing-review-api/internal/domain"

// statusTransition is the key of the workflow state table: the drawing's
// current status combined with the kind of review and the decision made.
type statusTransition struct {
	Current    domain.DrawingStatus
	ReviewType domain.ReviewType
	Decision   domain.ReviewDecision
}

// statusOutcome is the paired result of a legal transition. Drawing and
// submission statuses are tracked separately but move together.
type statusOutcome struct {
	Drawing    domain.DrawingStatus
	Submission domain.SubmissionStatus
}

// statusTable enumerates every legal review transition. Internal review only
// happens while the drawing is pending internal review; client review only
// while the client is actively reviewing. Everything absent from this table
// is a state conflict.
var statusTable = map[statusTransition]statusOutcome{
	{domain.DrawingStatusPendingInternalReview, domain.ReviewTypeInternal, domain.DecisionApproved}: {
		Drawing:    domain.DrawingStatusReadyForClientReview,
		Submission: domain.SubmissionStatusInternalApproved,
	},
	{domain.DrawingStatusPendingInternalReview, domain.ReviewTypeInternal, domain.DecisionRejected}: {
		Drawing:    domain.DrawingStatusRejected,
		Submission: domain.SubmissionStatusRejected,
	},
	{domain.DrawingStatusPendingInternalReview, domain.ReviewTypeInternal, domain.DecisionRevisionRequested}: {
		Drawing:    domain.DrawingStatusRevisionRequested,
		Submission: domain.SubmissionStatusRevisionRequested,
	},
	{domain.DrawingStatusClientReviewing, domain.ReviewTypeClient, domain.DecisionApproved}: {
		Drawing:    domain.DrawingStatusApproved,
		Submission: domain.SubmissionStatusClientApproved,
	},
	{domain.DrawingStatusClientReviewing, domain.ReviewTypeClient, domain.DecisionRejected}: {
		Drawing:    domain.DrawingStatusRejected,
		Submission: domain.SubmissionStatusRejected,
	},
	{domain.DrawingStatusClientReviewing, domain.ReviewTypeClient, domain.DecisionRevisionRequested}: {
		Drawing:    domain.DrawingStatusRevisionRequested,
		Submission: domain.SubmissionStatusRevisionRequested,
	},
}

// MapReviewStatus resolves the next drawing and submission statuses for a
// review decision. The second return value is false when the combination is
// not a legal transition, in which case no state may be mutated.
func MapReviewStatus(current domain.DrawingStatus, reviewType domain.ReviewType, decision domain.ReviewDecision) (domain.DrawingStatus, domain.SubmissionStatus, bool) {
	outcome, ok := statusTable[statusTransition{current, reviewType, decision}]
	if !ok {
		return "", "", false
	}
	return outcome.Drawing, outcome.Submission, true
}
