package domain

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
)

type Review struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	ClinicID  string       `json:"clinicId"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"date"`
	Status    ReviewStatus `json:"status"`
	Anonymous bool         `json:"isAnonymous,omitempty"`
}

func (r *Review) Clone() *Review {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}
