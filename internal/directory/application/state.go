package application

import (
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

// State is the full set of collections the directory owns. Ordered
// collections keep the most recent entry first, except Users which keeps
// registration order.
type State struct {
	Clinics               []domain.Clinic
	BlogPosts             []domain.BlogPost
	ProductReviews        []domain.ProductReview
	PendingClaims         []domain.ClaimRequest
	PendingSubmissions    []domain.ListingSubmission
	Users                 []domain.User
	PendingReviews        []domain.Review
	NewsletterSubscribers []domain.NewsletterSubscriber
	Treatments            []domain.Treatment
	Cities                []domain.City
	ProductCategories     []domain.ProductCategory

	// SessionUserID is the signed-in user, empty when nobody is.
	SessionUserID string
}

// Clone returns a deep copy sharing no mutable memory with s.
func (s State) Clone() State {
	out := State{SessionUserID: s.SessionUserID}
	out.Clinics = cloneEach(s.Clinics, (*domain.Clinic).Clone)
	out.BlogPosts = cloneEach(s.BlogPosts, (*domain.BlogPost).Clone)
	out.ProductReviews = cloneEach(s.ProductReviews, (*domain.ProductReview).Clone)
	out.PendingClaims = cloneEach(s.PendingClaims, (*domain.ClaimRequest).Clone)
	out.PendingSubmissions = cloneEach(s.PendingSubmissions, (*domain.ListingSubmission).Clone)
	out.Users = cloneEach(s.Users, (*domain.User).Clone)
	out.PendingReviews = cloneEach(s.PendingReviews, (*domain.Review).Clone)
	out.NewsletterSubscribers = cloneEach(s.NewsletterSubscribers, (*domain.NewsletterSubscriber).Clone)
	out.Treatments = append([]domain.Treatment(nil), s.Treatments...)
	out.Cities = append([]domain.City(nil), s.Cities...)
	out.ProductCategories = append([]domain.ProductCategory(nil), s.ProductCategories...)
	return out
}

func cloneEach[T any](values []T, clone func(*T) *T) []T {
	if values == nil {
		return nil
	}
	out := make([]T, len(values))
	for i := range values {
		out[i] = *clone(&values[i])
	}
	return out
}

func indexOf[T any](values []T, match func(*T) bool) int {
	for i := range values {
		if match(&values[i]) {
			return i
		}
	}
	return -1
}

func removeAt[T any](values []T, i int) []T {
	out := make([]T, 0, len(values)-1)
	out = append(out, values[:i]...)
	return append(out, values[i+1:]...)
}

func prepend[T any](values []T, v T) []T {
	out := make([]T, 0, len(values)+1)
	out = append(out, v)
	return append(out, values...)
}

func (s *State) clinicIndex(id string) int {
	return indexOf(s.Clinics, func(c *domain.Clinic) bool { return c.ID == id })
}

func (s *State) userIndex(id string) int {
	return indexOf(s.Users, func(u *domain.User) bool { return u.ID == id })
}

func (s *State) userIndexByEmail(email string) int {
	key := domain.EmailKey(email)
	return indexOf(s.Users, func(u *domain.User) bool { return domain.EmailKey(u.Email) == key })
}

// SessionUser resolves the signed-in user from the user collection.
func (s *State) SessionUser() *domain.User {
	if s.SessionUserID == "" {
		return nil
	}
	if i := s.userIndex(s.SessionUserID); i >= 0 {
		return s.Users[i].Clone()
	}
	return nil
}
