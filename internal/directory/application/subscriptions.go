package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

const billingCustomerPrefix = "cus_"

// ProcessSubscription moves a clinic onto a paid tier. The billing
// customer reference is created once and reused afterwards.
func (s *Service) ProcessSubscription(ctx context.Context, clinicID string, tier domain.Tier) (_ *domain.Clinic, err error) {
	defer s.observe(OpProcessSubscription, time.Now(), &err)
	if !tier.Paid() {
		return nil, apperrors.NewValidationErrorf("tier %q cannot be subscribed to", tier)
	}
	if err = s.wait(ctx, s.latency.Subscription); err != nil {
		return nil, err
	}

	var clinic domain.Clinic
	err = s.store.Update(ctx, func(st *State) error {
		i := st.clinicIndex(clinicID)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityClinic, clinicID)
		}
		c := &st.Clinics[i]
		c.Tier = tier
		c.SubscriptionStatus = domain.SubscriptionActive
		if c.BillingCustomerID == "" {
			c.BillingCustomerID = billingCustomerPrefix + s.newID()
		}
		c.UpdatedAt = s.now()
		clinic = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("clinic_id", clinicID).Str("tier", string(tier)).Msg("subscription activated")
	return clinic.Clone(), nil
}

// CancelSubscription drops a clinic back to Basic. The billing reference
// is kept so a later subscription reuses it.
func (s *Service) CancelSubscription(ctx context.Context, clinicID string) (_ *domain.Clinic, err error) {
	defer s.observe(OpCancelSubscription, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Subscription); err != nil {
		return nil, err
	}

	var clinic domain.Clinic
	err = s.store.Update(ctx, func(st *State) error {
		i := st.clinicIndex(clinicID)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityClinic, clinicID)
		}
		c := &st.Clinics[i]
		c.Tier = domain.TierBasic
		c.SubscriptionStatus = domain.SubscriptionCanceled
		c.UpdatedAt = s.now()
		clinic = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("clinic_id", clinicID).Msg("subscription canceled")
	return clinic.Clone(), nil
}
