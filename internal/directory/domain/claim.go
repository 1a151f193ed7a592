package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

type VerificationMethod string

const (
	VerificationByEmail    VerificationMethod = "email"
	VerificationByDocument VerificationMethod = "document"
)

// Verification is how a claimant proves they run the clinic: either
// through their business email or a supporting document.
type Verification struct {
	method    VerificationMethod
	reference string
}

func EmailVerification() Verification {
	return Verification{method: VerificationByEmail}
}

func DocumentVerification(reference string) Verification {
	return Verification{method: VerificationByDocument, reference: strings.TrimSpace(reference)}
}

// NewVerification builds the variant from its wire form.
func NewVerification(method, reference string) (Verification, error) {
	switch VerificationMethod(strings.TrimSpace(method)) {
	case VerificationByEmail, "":
		return EmailVerification(), nil
	case VerificationByDocument:
		v := DocumentVerification(reference)
		if v.reference == "" {
			return Verification{}, apperrors.NewValidationError("document verification requires a document")
		}
		return v, nil
	}
	return Verification{}, apperrors.NewValidationErrorf("unknown verification method: %s", method)
}

func (v Verification) Method() VerificationMethod {
	if v.method == "" {
		return VerificationByEmail
	}
	return v.method
}

// Document returns the document reference for document verification.
func (v Verification) Document() (string, bool) {
	if v.method != VerificationByDocument {
		return "", false
	}
	return v.reference, true
}

// WithDocument replaces the document reference, keeping the method.
func (v Verification) WithDocument(reference string) Verification {
	if v.method != VerificationByDocument {
		return v
	}
	return DocumentVerification(reference)
}

type verificationJSON struct {
	Method      VerificationMethod `json:"verificationMethod"`
	DocumentURL string             `json:"documentProof,omitempty"`
}

func (v Verification) MarshalJSON() ([]byte, error) {
	ref, _ := v.Document()
	return json.Marshal(verificationJSON{Method: v.Method(), DocumentURL: ref})
}

func (v *Verification) UnmarshalJSON(data []byte) error {
	var raw verificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode verification: %w", err)
	}
	parsed, err := NewVerification(string(raw.Method), raw.DocumentURL)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ClaimRequest exists only while pending; approval and denial remove it.
type ClaimRequest struct {
	ID             string       `json:"id"`
	ClinicID       string       `json:"clinicId"`
	ClinicName     string       `json:"clinicName"`
	SubmitterName  string       `json:"submitterName"`
	SubmitterTitle string       `json:"submitterTitle"`
	SubmitterEmail string       `json:"submitterEmail"`
	Verification   Verification `json:"verification"`
	CreatedAt      time.Time    `json:"createdAt"`
}

func (c *ClaimRequest) Clone() *ClaimRequest {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
