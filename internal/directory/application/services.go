package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

// StateStore holds the canonical directory state.
type StateStore interface {
	// View runs fn against a private copy of the current state.
	View(ctx context.Context, fn func(State) error) error
	// Update runs fn against a working copy and commits it only when fn returns nil.
	Update(ctx context.Context, fn func(*State) error) error
	// Replace swaps the whole state, used for seeding and reset.
	Replace(ctx context.Context, state State) error
}

// MediaUploader turns locally encoded image data into a hosted reference.
type MediaUploader interface {
	Upload(ctx context.Context, data string) (string, error)
}

// PendingKind names a moderation queue.
type PendingKind string

const (
	PendingReview     PendingKind = "review"
	PendingClaim      PendingKind = "claim"
	PendingSubmission PendingKind = "submission"
)

// PendingItem is what admins are told about when something lands in a queue.
type PendingItem struct {
	Kind    PendingKind
	ID      string
	Summary string
}

// ModerationNotifier tells administrators about new queue entries.
type ModerationNotifier interface {
	PendingItem(ctx context.Context, item PendingItem) error
}

// MetricsRecorder observes each operation.
type MetricsRecorder interface {
	ObserveOperation(operation string, duration time.Duration, err error)
}

// CredentialChecker verifies a password for a known user.
type CredentialChecker interface {
	Check(ctx context.Context, user domain.User, password string) error
}

// AcceptAnyPassword treats every password as valid.
type AcceptAnyPassword struct{}

func (AcceptAnyPassword) Check(context.Context, domain.User, string) error { return nil }

// DirectoryService is the use-case surface the HTTP layer depends on.
type DirectoryService interface {
	Bootstrap(ctx context.Context) (*Snapshot, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	FindClinic(ctx context.Context, id string) (*domain.Clinic, error)

	SignUp(ctx context.Context, cmd SignUpCommand) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error

	SubmitReview(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error)
	ApproveReview(ctx context.Context, id string) (*ReviewApproval, error)
	DenyReview(ctx context.Context, id string) error

	SubmitClaim(ctx context.Context, cmd SubmitClaimCommand) (*domain.ClaimRequest, error)
	ApproveClaim(ctx context.Context, id string) (*ClaimResult, error)
	DenyClaim(ctx context.Context, id string) error

	SubmitListing(ctx context.Context, cmd SubmitListingCommand) (*domain.ListingSubmission, error)
	ApproveSubmission(ctx context.Context, id string) (*domain.Clinic, error)
	DenySubmission(ctx context.Context, id string) error

	SaveClinic(ctx context.Context, clinic domain.Clinic) (*domain.Clinic, error)
	SaveBlogPost(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error)
	SaveProductReview(ctx context.Context, review domain.ProductReview) (*domain.ProductReview, error)
	DeleteBlogPost(ctx context.Context, id string) error
	DeleteProductReview(ctx context.Context, id string) error

	UploadFile(ctx context.Context, data string) (string, error)
	ToggleFavoriteClinic(ctx context.Context, userID, clinicID string) (*domain.User, error)
	SaveJournalEntry(ctx context.Context, userID, milestone string, cmd JournalEntryCommand) (*domain.User, error)
	SubscribeNewsletter(ctx context.Context, email string) (*domain.NewsletterSubscriber, error)

	ProcessSubscription(ctx context.Context, clinicID string, tier domain.Tier) (*domain.Clinic, error)
	CancelSubscription(ctx context.Context, clinicID string) (*domain.Clinic, error)

	Reset(ctx context.Context) error
}

// Snapshot is everything a client needs to render the directory.
type Snapshot struct {
	Clinics               []domain.Clinic               `json:"clinics"`
	BlogPosts             []domain.BlogPost             `json:"blogPosts"`
	ProductReviews        []domain.ProductReview        `json:"productReviews"`
	PendingClaims         []domain.ClaimRequest         `json:"pendingClaims"`
	PendingSubmissions    []domain.ListingSubmission    `json:"pendingSubmissions"`
	Users                 []domain.User                 `json:"users"`
	PendingReviews        []domain.Review               `json:"pendingReviews"`
	NewsletterSubscribers []domain.NewsletterSubscriber `json:"newsletterSubscribers"`
	Treatments            []domain.Treatment            `json:"treatments"`
	Cities                []domain.City                 `json:"cities"`
	ProductCategories     []domain.ProductCategory      `json:"productCategories"`
	CurrentUser           *domain.User                  `json:"currentUser"`
}

// SignUpCommand contains inputs for registering a patient account.
type SignUpCommand struct {
	Name     string
	Email    string
	Password string
}

// SubmitReviewCommand contains inputs for a new pending review.
type SubmitReviewCommand struct {
	ClinicID  string
	UserID    string
	Rating    int
	Comment   string
	Anonymous bool
}

// SubmitClaimCommand contains inputs for a clinic ownership claim.
type SubmitClaimCommand struct {
	ClinicID       string
	ClinicName     string
	SubmitterName  string
	SubmitterTitle string
	SubmitterEmail string
	Verification   domain.Verification
}

// SubmitListingCommand contains inputs for proposing a new clinic.
type SubmitListingCommand struct {
	ClinicName    string
	ClinicCity    string
	ClinicCountry string
	ClinicAddress string
	ClinicPhone   string
	ClinicWebsite string
	SubmitterName string
	SubmitterID   string
}

// JournalEntryCommand holds a patient's milestone notes.
type JournalEntryCommand struct {
	Notes    string
	PhotoURL string
}

// ReviewApproval reports where an approved review ended up. Attached is
// false when the review's clinic no longer exists.
type ReviewApproval struct {
	Review   domain.Review `json:"review"`
	Attached bool          `json:"attached"`
}

// ClaimResult carries both sides of an approved claim.
type ClaimResult struct {
	Clinic      domain.Clinic `json:"clinic"`
	User        domain.User   `json:"user"`
	UserCreated bool          `json:"userCreated"`
}
