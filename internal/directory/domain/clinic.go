package domain

import (
	"math"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Location struct {
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Clinic is a directory listing. Reviews holds approved reviews only,
// most recent first.
type Clinic struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Tier               Tier               `json:"tier"`
	Location           Location           `json:"location"`
	Rating             float64            `json:"rating"`
	ReviewCount        int                `json:"reviewCount"`
	ShortDescription   string             `json:"shortDescription"`
	LongDescription    string             `json:"longDescription"`
	TreatmentIDs       []string           `json:"treatments"`
	Contact            Contact            `json:"contact"`
	Reviews            []Review           `json:"reviews"`
	ImageURL           string             `json:"imageUrl"`
	GalleryImages      []string           `json:"galleryImages,omitempty"`
	VideoURL           string             `json:"videoUrl,omitempty"`
	Verified           bool               `json:"verified"`
	OwnerID            string             `json:"ownerId,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus,omitempty"`
	BillingCustomerID  string             `json:"billingCustomerId,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (c *Clinic) Clone() *Clinic {
	if c == nil {
		return nil
	}
	out := *c
	out.Location = c.Location.clone()
	out.TreatmentIDs = cloneStrings(c.TreatmentIDs)
	out.GalleryImages = cloneStrings(c.GalleryImages)
	if c.Reviews != nil {
		out.Reviews = make([]Review, len(c.Reviews))
		for i := range c.Reviews {
			out.Reviews[i] = *c.Reviews[i].Clone()
		}
	}
	return &out
}

func (l Location) clone() Location {
	out := l
	if l.Latitude != nil {
		lat := *l.Latitude
		out.Latitude = &lat
	}
	if l.Longitude != nil {
		lng := *l.Longitude
		out.Longitude = &lng
	}
	return out
}

// AttachReview prepends an approved review and refreshes the aggregates.
func (c *Clinic) AttachReview(r Review) {
	r.Status = ReviewApproved
	c.Reviews = append([]Review{r}, c.Reviews...)
	c.recalculateRating()
}

func (c *Clinic) recalculateRating() {
	c.ReviewCount = len(c.Reviews)
	if c.ReviewCount == 0 {
		c.Rating = 0
		return
	}
	total := 0
	for _, r := range c.Reviews {
		total += r.Rating
	}
	mean := float64(total) / float64(c.ReviewCount)
	c.Rating = math.Round(mean*10) / 10
}

// HasOwner reports whether the listing has been claimed.
func (c *Clinic) HasOwner() bool {
	return c.OwnerID != ""
}
