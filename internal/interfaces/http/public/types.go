package public

import "github.com/sngm3741/hairline-directory/api/internal/directory/domain"

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type sessionResponse struct {
	User *domain.User `json:"user"`
}

type reviewCreateRequest struct {
	ClinicID    string `json:"clinicId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type claimCreateRequest struct {
	ClinicID           string `json:"clinicId"`
	ClinicName         string `json:"clinicName"`
	SubmitterName      string `json:"submitterName"`
	SubmitterTitle     string `json:"submitterTitle"`
	SubmitterEmail     string `json:"submitterEmail"`
	VerificationMethod string `json:"verificationMethod"`
	DocumentProof      string `json:"documentProof"`
}

type submissionCreateRequest struct {
	ClinicName    string `json:"clinicName"`
	ClinicCity    string `json:"clinicCity"`
	ClinicCountry string `json:"clinicCountry"`
	ClinicAddress string `json:"clinicAddress"`
	ClinicPhone   string `json:"clinicPhone"`
	ClinicWebsite string `json:"clinicWebsite"`
	SubmitterName string `json:"submitterName"`
}

type uploadRequest struct {
	Data string `json:"data"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

type newsletterRequest struct {
	Email string `json:"email"`
}

type journalRequest struct {
	Notes    string `json:"notes"`
	PhotoURL string `json:"photoUrl"`
}

type statusResponse struct {
	Status string `json:"status"`
}
