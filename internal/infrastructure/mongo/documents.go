package mongo

import (
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

// ClinicDocument は MongoDB 上のクリニックスキーマ。レビューは reviews コレクション側に保持する。
type ClinicDocument struct {
	ID                 string           `bson:"_id"`
	Position           int              `bson:"position"`
	Name               string           `bson:"name"`
	Tier               string           `bson:"tier"`
	Location           LocationDocument `bson:"location"`
	Rating             float64          `bson:"rating"`
	ReviewCount        int              `bson:"reviewCount"`
	ShortDescription   string           `bson:"shortDescription,omitempty"`
	LongDescription    string           `bson:"longDescription,omitempty"`
	TreatmentIDs       []string         `bson:"treatments,omitempty"`
	Phone              string           `bson:"phone,omitempty"`
	Website            string           `bson:"website,omitempty"`
	ImageURL           string           `bson:"imageUrl,omitempty"`
	GalleryImages      []string         `bson:"galleryImages,omitempty"`
	VideoURL           string           `bson:"videoUrl,omitempty"`
	Verified           bool             `bson:"verified"`
	OwnerID            string           `bson:"ownerId,omitempty"`
	SubscriptionStatus string           `bson:"subscriptionStatus,omitempty"`
	BillingCustomerID  string           `bson:"billingCustomerId,omitempty"`
	UpdatedAt          time.Time        `bson:"updatedAt"`
}

type LocationDocument struct {
	City      string   `bson:"city"`
	Country   string   `bson:"country"`
	Address   string   `bson:"address,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty"`
}

// ReviewDocument は承認済み・承認待ちの両方を status で区別して保持する。
type ReviewDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ClinicID  string    `bson:"clinicId"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	Status    string    `bson:"status"`
	Anonymous bool      `bson:"anonymous,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

// UserDocument stores emailLower for the unique case-insensitive index.
type UserDocument struct {
	ID                string                     `bson:"_id"`
	Position          int                        `bson:"position"`
	Name              string                     `bson:"name"`
	Email             string                     `bson:"email"`
	EmailLower        string                     `bson:"emailLower"`
	Role              string                     `bson:"role"`
	FavoriteClinicIDs []string                   `bson:"favoriteClinicIds"`
	Journal           map[string]JournalDocument `bson:"journal,omitempty"`
	CreatedAt         time.Time                  `bson:"createdAt"`
}

type JournalDocument struct {
	Date     time.Time `bson:"date"`
	Notes    string    `bson:"notes,omitempty"`
	PhotoURL string    `bson:"photoUrl,omitempty"`
}

type ClaimDocument struct {
	ID                 string    `bson:"_id"`
	Position           int       `bson:"position"`
	ClinicID           string    `bson:"clinicId"`
	ClinicName         string    `bson:"clinicName"`
	SubmitterName      string    `bson:"submitterName"`
	SubmitterTitle     string    `bson:"submitterTitle,omitempty"`
	SubmitterEmail     string    `bson:"submitterEmail"`
	VerificationMethod string    `bson:"verificationMethod"`
	DocumentProof      string    `bson:"documentProof,omitempty"`
	CreatedAt          time.Time `bson:"createdAt"`
}

type SubmissionDocument struct {
	ID            string    `bson:"_id"`
	Position      int       `bson:"position"`
	ClinicName    string    `bson:"clinicName"`
	ClinicCity    string    `bson:"clinicCity"`
	ClinicCountry string    `bson:"clinicCountry,omitempty"`
	ClinicAddress string    `bson:"clinicAddress,omitempty"`
	ClinicPhone   string    `bson:"clinicPhone,omitempty"`
	ClinicWebsite string    `bson:"clinicWebsite,omitempty"`
	SubmitterName string    `bson:"submitterName,omitempty"`
	SubmitterID   string    `bson:"submitterId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
}

type BlogPostDocument struct {
	ID       string    `bson:"_id"`
	Position int       `bson:"position"`
	Title    string    `bson:"title"`
	Author   string    `bson:"author,omitempty"`
	Date     time.Time `bson:"date"`
	Summary  string    `bson:"summary,omitempty"`
	Content  string    `bson:"content,omitempty"`
	ImageURL string    `bson:"imageUrl,omitempty"`
}

type ProductReviewDocument struct {
	ID            string  `bson:"_id"`
	Position      int     `bson:"position"`
	Name          string  `bson:"name"`
	Rating        float64 `bson:"rating"`
	Summary       string  `bson:"summary,omitempty"`
	FullReview    string  `bson:"fullReview,omitempty"`
	AffiliateLink string  `bson:"affiliateLink,omitempty"`
	ImageURL      string  `bson:"imageUrl,omitempty"`
	CategoryID    string  `bson:"categoryId,omitempty"`
}

type SubscriberDocument struct {
	ID           string    `bson:"_id"`
	Position     int       `bson:"position"`
	Email        string    `bson:"email"`
	EmailLower   string    `bson:"emailLower"`
	SubscribedAt time.Time `bson:"subscribedAt"`
}

// ReferenceDocument covers treatments, cities and product categories.
type ReferenceDocument struct {
	ID          string `bson:"_id"`
	Position    int    `bson:"position"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	Country     string `bson:"country,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty"`
}

func clinicToDocument(c domain.Clinic, position int) ClinicDocument {
	return ClinicDocument{
		ID:       c.ID,
		Position: position,
		Name:     c.Name,
		Tier:     string(c.Tier),
		Location: LocationDocument{
			City:      c.Location.City,
			Country:   c.Location.Country,
			Address:   c.Location.Address,
			Latitude:  c.Location.Latitude,
			Longitude: c.Location.Longitude,
		},
		Rating:             c.Rating,
		ReviewCount:        c.ReviewCount,
		ShortDescription:   c.ShortDescription,
		LongDescription:    c.LongDescription,
		TreatmentIDs:       c.TreatmentIDs,
		Phone:              c.Contact.Phone,
		Website:            c.Contact.Website,
		ImageURL:           c.ImageURL,
		GalleryImages:      c.GalleryImages,
		VideoURL:           c.VideoURL,
		Verified:           c.Verified,
		OwnerID:            c.OwnerID,
		SubscriptionStatus: string(c.SubscriptionStatus),
		BillingCustomerID:  c.BillingCustomerID,
		UpdatedAt:          c.UpdatedAt,
	}
}

func mapClinicDocument(doc ClinicDocument) domain.Clinic {
	treatments := doc.TreatmentIDs
	if treatments == nil {
		treatments = []string{}
	}
	return domain.Clinic{
		ID:   doc.ID,
		Name: doc.Name,
		Tier: domain.Tier(doc.Tier),
		Location: domain.Location{
			City:      doc.Location.City,
			Country:   doc.Location.Country,
			Address:   doc.Location.Address,
			Latitude:  doc.Location.Latitude,
			Longitude: doc.Location.Longitude,
		},
		Rating:             doc.Rating,
		ReviewCount:        doc.ReviewCount,
		ShortDescription:   doc.ShortDescription,
		LongDescription:    doc.LongDescription,
		TreatmentIDs:       treatments,
		Contact:            domain.Contact{Phone: doc.Phone, Website: doc.Website},
		Reviews:            []domain.Review{},
		ImageURL:           doc.ImageURL,
		GalleryImages:      doc.GalleryImages,
		VideoURL:           doc.VideoURL,
		Verified:           doc.Verified,
		OwnerID:            doc.OwnerID,
		SubscriptionStatus: domain.SubscriptionStatus(doc.SubscriptionStatus),
		BillingCustomerID:  doc.BillingCustomerID,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func reviewToDocument(r domain.Review) ReviewDocument {
	return ReviewDocument{
		ID:        r.ID,
		UserID:    r.UserID,
		ClinicID:  r.ClinicID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		Anonymous: r.Anonymous,
		CreatedAt: r.CreatedAt,
	}
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:        doc.ID,
		UserID:    doc.UserID,
		ClinicID:  doc.ClinicID,
		Rating:    doc.Rating,
		Comment:   doc.Comment,
		CreatedAt: doc.CreatedAt,
		Status:    domain.ReviewStatus(doc.Status),
		Anonymous: doc.Anonymous,
	}
}

func userToDocument(u domain.User, position int) UserDocument {
	var journal map[string]JournalDocument
	if len(u.Journal) > 0 {
		journal = make(map[string]JournalDocument, len(u.Journal))
		for k, v := range u.Journal {
			journal[string(k)] = JournalDocument{Date: v.Date, Notes: v.Notes, PhotoURL: v.PhotoURL}
		}
	}
	favorites := u.FavoriteClinicIDs
	if favorites == nil {
		favorites = []string{}
	}
	return UserDocument{
		ID:                u.ID,
		Position:          position,
		Name:              u.Name,
		Email:             u.Email,
		EmailLower:        domain.EmailKey(u.Email),
		Role:              string(u.Role),
		FavoriteClinicIDs: favorites,
		Journal:           journal,
		CreatedAt:         u.CreatedAt,
	}
}

func mapUserDocument(doc UserDocument) domain.User {
	var journal map[domain.Milestone]domain.JournalEntry
	if len(doc.Journal) > 0 {
		journal = make(map[domain.Milestone]domain.JournalEntry, len(doc.Journal))
		for k, v := range doc.Journal {
			journal[domain.Milestone(k)] = domain.JournalEntry{Date: v.Date, Notes: v.Notes, PhotoURL: v.PhotoURL}
		}
	}
	favorites := doc.FavoriteClinicIDs
	if favorites == nil {
		favorites = []string{}
	}
	return domain.User{
		ID:                doc.ID,
		Name:              doc.Name,
		Email:             doc.Email,
		Role:              domain.Role(doc.Role),
		FavoriteClinicIDs: favorites,
		Journal:           journal,
		CreatedAt:         doc.CreatedAt,
	}
}

func claimToDocument(c domain.ClaimRequest, position int) ClaimDocument {
	proof, _ := c.Verification.Document()
	return ClaimDocument{
		ID:                 c.ID,
		Position:           position,
		ClinicID:           c.ClinicID,
		ClinicName:         c.ClinicName,
		SubmitterName:      c.SubmitterName,
		SubmitterTitle:     c.SubmitterTitle,
		SubmitterEmail:     c.SubmitterEmail,
		VerificationMethod: string(c.Verification.Method()),
		DocumentProof:      proof,
		CreatedAt:          c.CreatedAt,
	}
}

func mapClaimDocument(doc ClaimDocument) (domain.ClaimRequest, error) {
	verification, err := domain.NewVerification(doc.VerificationMethod, doc.DocumentProof)
	if err != nil {
		return domain.ClaimRequest{}, err
	}
	return domain.ClaimRequest{
		ID:             doc.ID,
		ClinicID:       doc.ClinicID,
		ClinicName:     doc.ClinicName,
		SubmitterName:  doc.SubmitterName,
		SubmitterTitle: doc.SubmitterTitle,
		SubmitterEmail: doc.SubmitterEmail,
		Verification:   verification,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

func submissionToDocument(s domain.ListingSubmission, position int) SubmissionDocument {
	return SubmissionDocument{
		ID:            s.ID,
		Position:      position,
		ClinicName:    s.ClinicName,
		ClinicCity:    s.ClinicCity,
		ClinicCountry: s.ClinicCountry,
		ClinicAddress: s.ClinicAddress,
		ClinicPhone:   s.ClinicPhone,
		ClinicWebsite: s.ClinicWebsite,
		SubmitterName: s.SubmitterName,
		SubmitterID:   s.SubmitterID,
		CreatedAt:     s.CreatedAt,
	}
}

func mapSubmissionDocument(doc SubmissionDocument) domain.ListingSubmission {
	return domain.ListingSubmission{
		ID:            doc.ID,
		ClinicName:    doc.ClinicName,
		ClinicCity:    doc.ClinicCity,
		ClinicCountry: doc.ClinicCountry,
		ClinicAddress: doc.ClinicAddress,
		ClinicPhone:   doc.ClinicPhone,
		ClinicWebsite: doc.ClinicWebsite,
		SubmitterName: doc.SubmitterName,
		SubmitterID:   doc.SubmitterID,
		CreatedAt:     doc.CreatedAt,
	}
}

func blogPostToDocument(p domain.BlogPost, position int) BlogPostDocument {
	return BlogPostDocument{
		ID:       p.ID,
		Position: position,
		Title:    p.Title,
		Author:   p.Author,
		Date:     p.Date,
		Summary:  p.Summary,
		Content:  p.Content,
		ImageURL: p.ImageURL,
	}
}

func mapBlogPostDocument(doc BlogPostDocument) domain.BlogPost {
	return domain.BlogPost{
		ID:       doc.ID,
		Title:    doc.Title,
		Author:   doc.Author,
		Date:     doc.Date,
		Summary:  doc.Summary,
		Content:  doc.Content,
		ImageURL: doc.ImageURL,
	}
}

func productReviewToDocument(p domain.ProductReview, position int) ProductReviewDocument {
	return ProductReviewDocument{
		ID:            p.ID,
		Position:      position,
		Name:          p.Name,
		Rating:        p.Rating,
		Summary:       p.Summary,
		FullReview:    p.FullReview,
		AffiliateLink: p.AffiliateLink,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
	}
}

func mapProductReviewDocument(doc ProductReviewDocument) domain.ProductReview {
	return domain.ProductReview{
		ID:            doc.ID,
		Name:          doc.Name,
		Rating:        doc.Rating,
		Summary:       doc.Summary,
		FullReview:    doc.FullReview,
		AffiliateLink: doc.AffiliateLink,
		ImageURL:      doc.ImageURL,
		CategoryID:    doc.CategoryID,
	}
}

func subscriberToDocument(s domain.NewsletterSubscriber, position int) SubscriberDocument {
	return SubscriberDocument{
		ID:           s.ID,
		Position:     position,
		Email:        s.Email,
		EmailLower:   domain.EmailKey(s.Email),
		SubscribedAt: s.SubscribedAt,
	}
}

func mapSubscriberDocument(doc SubscriberDocument) domain.NewsletterSubscriber {
	return domain.NewsletterSubscriber{ID: doc.ID, Email: doc.Email, SubscribedAt: doc.SubscribedAt}
}

// cities have no id of their own; name+country is unique in practice.
func cityID(c domain.City) string {
	return c.Country + "/" + c.Name
}
