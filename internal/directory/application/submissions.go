package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func (s *Service) SubmitListing(ctx context.Context, cmd SubmitListingCommand) (_ *domain.ListingSubmission, err error) {
	defer s.observe(OpSubmitListing, time.Now(), &err)
	name, err := domain.RequireText("clinicName", cmd.ClinicName)
	if err != nil {
		return nil, err
	}
	city, err := domain.RequireText("clinicCity", cmd.ClinicCity)
	if err != nil {
		return nil, err
	}
	website, err := domain.NewURL(cmd.ClinicWebsite)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Submit); err != nil {
		return nil, err
	}

	sub := domain.ListingSubmission{
		ID:            s.newID(),
		ClinicName:    name,
		ClinicCity:    city,
		ClinicCountry: cmd.ClinicCountry,
		ClinicAddress: cmd.ClinicAddress,
		ClinicPhone:   cmd.ClinicPhone,
		ClinicWebsite: website.String(),
		SubmitterName: cmd.SubmitterName,
		SubmitterID:   cmd.SubmitterID,
		CreatedAt:     s.now(),
	}
	err = s.store.Update(ctx, func(st *State) error {
		st.PendingSubmissions = prepend(st.PendingSubmissions, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("submission_id", sub.ID).Msg("listing submitted")
	s.notify(ctx, PendingItem{
		Kind:    PendingSubmission,
		ID:      sub.ID,
		Summary: fmt.Sprintf("New listing proposed: %s, %s", sub.ClinicName, sub.ClinicCity),
	})
	return sub.Clone(), nil
}

// ApproveSubmission turns a submission into a new unverified Basic clinic.
func (s *Service) ApproveSubmission(ctx context.Context, id string) (_ *domain.Clinic, err error) {
	defer s.observe(OpApproveSubmission, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Moderate); err != nil {
		return nil, err
	}

	var clinic domain.Clinic
	err = s.store.Update(ctx, func(st *State) error {
		i := indexOf(st.PendingSubmissions, func(p *domain.ListingSubmission) bool { return p.ID == id })
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntitySubmission, id)
		}
		clinic = st.PendingSubmissions[i].ToClinic(s.newID(), s.now())
		st.Clinics = prepend(st.Clinics, clinic)
		st.PendingSubmissions = removeAt(st.PendingSubmissions, i)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("submission_id", id).Str("clinic_id", clinic.ID).Msg("submission approved")
	return clinic.Clone(), nil
}

// DenySubmission discards a pending submission. Unknown ids are ignored.
func (s *Service) DenySubmission(ctx context.Context, id string) (err error) {
	defer s.observe(OpDenySubmission, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Moderate); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		if i := indexOf(st.PendingSubmissions, func(p *domain.ListingSubmission) bool { return p.ID == id }); i >= 0 {
			st.PendingSubmissions = removeAt(st.PendingSubmissions, i)
		}
		return nil
	})
}
