package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func (s *Service) SubmitClaim(ctx context.Context, cmd SubmitClaimCommand) (_ *domain.ClaimRequest, err error) {
	defer s.observe(OpSubmitClaim, time.Now(), &err)
	clinicID, err := domain.RequireText("clinicId", cmd.ClinicID)
	if err != nil {
		return nil, err
	}
	name, err := domain.RequireText("submitterName", cmd.SubmitterName)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(cmd.SubmitterEmail)
	if err != nil {
		return nil, err
	}
	verification := cmd.Verification
	if ref, ok := verification.Document(); ok {
		if ref == "" {
			return nil, apperrors.NewValidationError("document verification requires a document")
		}
		uploaded, err := s.uploadLocal(ctx, ref)
		if err != nil {
			return nil, err
		}
		verification = verification.WithDocument(uploaded)
	}
	if err = s.wait(ctx, s.latency.Submit); err != nil {
		return nil, err
	}

	claim := domain.ClaimRequest{
		ID:             s.newID(),
		ClinicID:       clinicID,
		ClinicName:     cmd.ClinicName,
		SubmitterName:  name,
		SubmitterTitle: cmd.SubmitterTitle,
		SubmitterEmail: email.String(),
		Verification:   verification,
		CreatedAt:      s.now(),
	}
	err = s.store.Update(ctx, func(st *State) error {
		if claim.ClinicName == "" {
			if i := st.clinicIndex(clinicID); i >= 0 {
				claim.ClinicName = st.Clinics[i].Name
			}
		}
		st.PendingClaims = prepend(st.PendingClaims, claim)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("claim_id", claim.ID).Str("clinic_id", clinicID).Msg("claim submitted")
	s.notify(ctx, PendingItem{
		Kind:    PendingClaim,
		ID:      claim.ID,
		Summary: fmt.Sprintf("%s claims %s (%s verification)", claim.SubmitterName, claim.ClinicName, claim.Verification.Method()),
	})
	return claim.Clone(), nil
}

// ApproveClaim hands a clinic to the claimant. The claimant's account is
// created or promoted to clinic owner, the clinic becomes verified on the
// Basic tier, and the claim leaves the queue. Nothing changes on failure.
func (s *Service) ApproveClaim(ctx context.Context, id string) (_ *ClaimResult, err error) {
	defer s.observe(OpApproveClaim, time.Now(), &err)
	if err = s.wait(ctx, s.latency.ApproveClaim); err != nil {
		return nil, err
	}

	var result ClaimResult
	err = s.store.Update(ctx, func(st *State) error {
		ci := indexOf(st.PendingClaims, func(c *domain.ClaimRequest) bool { return c.ID == id })
		if ci < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityClaim, id)
		}
		claim := st.PendingClaims[ci]

		ui := st.userIndexByEmail(claim.SubmitterEmail)
		if ui < 0 {
			st.Users = append(st.Users, domain.User{
				ID:                s.newID(),
				Name:              claim.SubmitterName,
				Email:             claim.SubmitterEmail,
				Role:              domain.RoleClinicOwner,
				FavoriteClinicIDs: []string{},
				CreatedAt:         s.now(),
			})
			ui = len(st.Users) - 1
			result.UserCreated = true
		} else {
			st.Users[ui].Role = domain.RoleClinicOwner
		}
		owner := &st.Users[ui]

		k := st.clinicIndex(claim.ClinicID)
		if k < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityClinic, claim.ClinicID)
		}
		clinic := &st.Clinics[k]
		clinic.Verified = true
		clinic.OwnerID = owner.ID
		clinic.Tier = domain.TierBasic
		clinic.UpdatedAt = s.now()

		st.PendingClaims = removeAt(st.PendingClaims, ci)
		result.Clinic = *clinic.Clone()
		result.User = *owner.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("claim_id", id).
		Str("clinic_id", result.Clinic.ID).
		Str("user_id", result.User.ID).
		Bool("user_created", result.UserCreated).
		Msg("claim approved")
	return &result, nil
}

// DenyClaim discards a pending claim. Unknown ids are ignored.
func (s *Service) DenyClaim(ctx context.Context, id string) (err error) {
	defer s.observe(OpDenyClaim, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Moderate); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.PendingClaims, func(c *domain.ClaimRequest) bool { return c.ID == id }); i >= 0 {
			st.PendingClaims = removeAt(st.PendingClaims, i)
		}
		return nil
	})
}
