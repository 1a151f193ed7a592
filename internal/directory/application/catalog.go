package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// FindClinic returns a copy of a single clinic.
func (s *Service) FindClinic(ctx context.Context, id string) (*domain.Clinic, error) {
	var clinic *domain.Clinic
	err := s.store.View(ctx, func(st State) error {
		i := st.clinicIndex(id)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityClinic, id)
		}
		clinic = st.Clinics[i].Clone()
		return nil
	})
	return clinic, err
}

// SaveClinic inserts or replaces a clinic by id. Local images are uploaded
// first and the media fields must fit the clinic's tier. Reviews and their
// aggregates are owned by moderation and are never overwritten here.
func (s *Service) SaveClinic(ctx context.Context, clinic domain.Clinic) (_ *domain.Clinic, err error) {
	defer s.observe(OpSaveClinic, time.Now(), &err)
	clinic = *clinic.Clone()
	if clinic.Name, err = domain.RequireText("name", clinic.Name); err != nil {
		return nil, err
	}
	if clinic.Tier == "" {
		clinic.Tier = domain.TierBasic
	}
	if !clinic.Tier.Valid() {
		return nil, apperrors.NewValidationErrorf("unknown tier: %s", clinic.Tier)
	}
	clinic.GalleryImages = domain.CompactGallery(clinic.GalleryImages)
	if err = clinic.Tier.CheckMedia(clinic.GalleryImages, clinic.VideoURL); err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Save); err != nil {
		return nil, err
	}

	media, err := s.uploadBatch(ctx, append([]string{clinic.ImageURL}, clinic.GalleryImages...))
	if err != nil {
		return nil, err
	}
	clinic.ImageURL, clinic.GalleryImages = media[0], media[1:]

	created := false
	err = s.store.Update(ctx, func(st *State) error {
		clinic.UpdatedAt = s.now()
		if i := st.clinicIndex(clinic.ID); clinic.ID != "" && i >= 0 {
			current := st.Clinics[i]
			clinic.Reviews = current.Reviews
			clinic.Rating = current.Rating
			clinic.ReviewCount = current.ReviewCount
			st.Clinics[i] = clinic
			return nil
		}
		clinic.ID = s.newID()
		clinic.Reviews = []domain.Review{}
		clinic.Rating = 0
		clinic.ReviewCount = 0
		if clinic.TreatmentIDs == nil {
			clinic.TreatmentIDs = []string{}
		}
		st.Clinics = prepend(st.Clinics, clinic)
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("clinic_id", clinic.ID).Bool("created", created).Msg("clinic saved")
	return clinic.Clone(), nil
}

func (s *Service) SaveBlogPost(ctx context.Context, post domain.BlogPost) (_ *domain.BlogPost, err error) {
	defer s.observe(OpSaveBlogPost, time.Now(), &err)
	if post.Title, err = domain.RequireText("title", post.Title); err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Save); err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(st *State) error {
		if post.Date.IsZero() {
			post.Date = s.now()
		}
		if i := indexOf(st.BlogPosts, func(p *domain.BlogPost) bool { return p.ID == post.ID }); post.ID != "" && i >= 0 {
			st.BlogPosts[i] = post
			return nil
		}
		post.ID = s.newID()
		st.BlogPosts = prepend(st.BlogPosts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("post_id", post.ID).Msg("blog post saved")
	return post.Clone(), nil
}

func (s *Service) SaveProductReview(ctx context.Context, review domain.ProductReview) (_ *domain.ProductReview, err error) {
	defer s.observe(OpSaveProductReview, time.Now(), &err)
	if review.Name, err = domain.RequireText("name", review.Name); err != nil {
		return nil, err
	}
	if review.Rating < 0 || review.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 0 and 5")
	}
	if err = s.wait(ctx, s.latency.Save); err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.ProductReviews, func(p *domain.ProductReview) bool { return p.ID == review.ID }); review.ID != "" && i >= 0 {
			st.ProductReviews[i] = review
			return nil
		}
		review.ID = s.newID()
		st.ProductReviews = prepend(st.ProductReviews, review)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", review.ID).Msg("product review saved")
	return review.Clone(), nil
}

// DeleteBlogPost removes a post. Unknown ids are ignored.
func (s *Service) DeleteBlogPost(ctx context.Context, id string) (err error) {
	defer s.observe(OpDeleteBlogPost, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.BlogPosts, func(p *domain.BlogPost) bool { return p.ID == id }); i >= 0 {
			st.BlogPosts = removeAt(st.BlogPosts, i)
		}
		return nil
	})
}

// DeleteProductReview removes a product review. Unknown ids are ignored.
func (s *Service) DeleteProductReview(ctx context.Context, id string) (err error) {
	defer s.observe(OpDeleteProductReview, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.ProductReviews, func(p *domain.ProductReview) bool { return p.ID == id }); i >= 0 {
			st.ProductReviews = removeAt(st.ProductReviews, i)
		}
		return nil
	})
}
