package domain

import "time"

// ListingSubmission is a patient-proposed clinic awaiting moderation.
type ListingSubmission struct {
	ID            string    `json:"id"`
	ClinicName    string    `json:"clinicName"`
	ClinicCity    string    `json:"clinicCity"`
	ClinicCountry string    `json:"clinicCountry"`
	ClinicAddress string    `json:"clinicAddress"`
	ClinicPhone   string    `json:"clinicPhone"`
	ClinicWebsite string    `json:"clinicWebsite"`
	SubmitterName string    `json:"submitterName"`
	SubmitterID   string    `json:"submitterId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s *ListingSubmission) Clone() *ListingSubmission {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// ToClinic builds the unverified Basic listing an approval produces.
func (s *ListingSubmission) ToClinic(id string, now time.Time) Clinic {
	return Clinic{
		ID:   id,
		Name: s.ClinicName,
		Tier: TierBasic,
		Location: Location{
			City:    s.ClinicCity,
			Country: s.ClinicCountry,
			Address: s.ClinicAddress,
		},
		Contact: Contact{
			Phone:   s.ClinicPhone,
			Website: s.ClinicWebsite,
		},
		TreatmentIDs: []string{},
		Reviews:      []Review{},
		UpdatedAt:    now,
	}
}
