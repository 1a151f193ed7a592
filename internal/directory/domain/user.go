package domain

import (
	"time"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClinicOwner Role = "clinic-owner"
	RolePatient     Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClinicOwner, RolePatient:
		return true
	}
	return false
}

// Milestone keys for the recovery journal.
type Milestone string

const (
	MilestonePreOp   Milestone = "preOp"
	MilestoneMonth1  Milestone = "month1"
	MilestoneMonth3  Milestone = "month3"
	MilestoneMonth6  Milestone = "month6"
	MilestoneMonth9  Milestone = "month9"
	MilestoneMonth12 Milestone = "month12"
)

var milestones = []Milestone{
	MilestonePreOp,
	MilestoneMonth1,
	MilestoneMonth3,
	MilestoneMonth6,
	MilestoneMonth9,
	MilestoneMonth12,
}

// Milestones returns the journal keys in chronological order.
func Milestones() []Milestone {
	return append([]Milestone(nil), milestones...)
}

func ParseMilestone(value string) (Milestone, error) {
	for _, m := range milestones {
		if string(m) == value {
			return m, nil
		}
	}
	return "", apperrors.NewValidationErrorf("unknown journal milestone: %s", value)
}

type JournalEntry struct {
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes"`
	PhotoURL string    `json:"photoUrl,omitempty"`
}

type User struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Email             string                     `json:"email"`
	Role              Role                       `json:"role"`
	FavoriteClinicIDs []string                   `json:"favoriteClinicIds"`
	Journal           map[Milestone]JournalEntry `json:"journal,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.FavoriteClinicIDs = cloneStrings(u.FavoriteClinicIDs)
	if u.Journal != nil {
		out.Journal = make(map[Milestone]JournalEntry, len(u.Journal))
		for k, v := range u.Journal {
			out.Journal[k] = v
		}
	}
	return &out
}

// ToggleFavorite adds clinicID when absent and removes it otherwise.
// It reports whether the clinic is a favorite afterwards.
func (u *User) ToggleFavorite(clinicID string) bool {
	for i, id := range u.FavoriteClinicIDs {
		if id == clinicID {
			u.FavoriteClinicIDs = append(u.FavoriteClinicIDs[:i:i], u.FavoriteClinicIDs[i+1:]...)
			return false
		}
	}
	u.FavoriteClinicIDs = append(u.FavoriteClinicIDs, clinicID)
	return true
}

func (u *User) SetJournalEntry(m Milestone, entry JournalEntry) {
	if u.Journal == nil {
		u.Journal = make(map[Milestone]JournalEntry)
	}
	u.Journal[m] = entry
}
