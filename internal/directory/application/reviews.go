package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func (s *Service) SubmitReview(ctx context.Context, cmd SubmitReviewCommand) (_ *domain.Review, err error) {
	defer s.observe(OpSubmitReview, time.Now(), &err)
	clinicID, err := domain.RequireText("clinicId", cmd.ClinicID)
	if err != nil {
		return nil, err
	}
	userID, err := domain.RequireText("userId", cmd.UserID)
	if err != nil {
		return nil, err
	}
	rating, err := domain.NewRating(cmd.Rating)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Submit); err != nil {
		return nil, err
	}

	review := domain.Review{
		ID:        s.newID(),
		UserID:    userID,
		ClinicID:  clinicID,
		Rating:    rating.Int(),
		Comment:   cmd.Comment,
		CreatedAt: s.now(),
		Status:    domain.ReviewPending,
		Anonymous: cmd.Anonymous,
	}
	err = s.store.Update(ctx, func(st *State) error {
		st.PendingReviews = prepend(st.PendingReviews, review)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("review_id", review.ID).Str("clinic_id", clinicID).Msg("review submitted")
	s.notify(ctx, PendingItem{
		Kind:    PendingReview,
		ID:      review.ID,
		Summary: fmt.Sprintf("New %d-star review for clinic %s", review.Rating, clinicID),
	})
	return review.Clone(), nil
}

// ApproveReview moves a pending review into its clinic's review list.
func (s *Service) ApproveReview(ctx context.Context, id string) (_ *ReviewApproval, err error) {
	defer s.observe(OpApproveReview, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Moderate); err != nil {
		return nil, err
	}

	var result ReviewApproval
	err = s.store.Update(ctx, func(st *State) error {
		i := indexOf(st.PendingReviews, func(r *domain.Review) bool { return r.ID == id })
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityReview, id)
		}
		review := st.PendingReviews[i]
		review.Status = domain.ReviewApproved
		st.PendingReviews = removeAt(st.PendingReviews, i)

		if c := st.clinicIndex(review.ClinicID); c >= 0 {
			st.Clinics[c].AttachReview(review)
			result.Attached = true
		}
		result.Review = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Attached {
		s.logger.Warn().
			Str("review_id", id).
			Str("clinic_id", result.Review.ClinicID).
			Msg("approved review references a missing clinic; review dropped from queue")
	} else {
		s.logger.Info().Str("review_id", id).Str("clinic_id", result.Review.ClinicID).Msg("review approved")
	}
	return &result, nil
}

// DenyReview discards a pending review. Unknown ids are ignored.
func (s *Service) DenyReview(ctx context.Context, id string) (err error) {
	defer s.observe(OpDenyReview, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Moderate); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.PendingReviews, func(r *domain.Review) bool { return r.ID == id }); i >= 0 {
			st.PendingReviews = removeAt(st.PendingReviews, i)
		}
		return nil
	})
}
