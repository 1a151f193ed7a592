package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func (s *Service) SubscribeNewsletter(ctx context.Context, email string) (_ *domain.NewsletterSubscriber, err error) {
	defer s.observe(OpSubscribeNewsletter, time.Now(), &err)
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Newsletter); err != nil {
		return nil, err
	}

	sub := domain.NewsletterSubscriber{
		ID:           s.newID(),
		Email:        addr.String(),
		SubscribedAt: s.now(),
	}
	err = s.store.Update(ctx, func(st *State) error {
		key := addr.Key()
		if indexOf(st.NewsletterSubscribers, func(n *domain.NewsletterSubscriber) bool { return domain.EmailKey(n.Email) == key }) >= 0 {
			return apperrors.NewDuplicateSubscriptionError(addr.String())
		}
		st.NewsletterSubscribers = prepend(st.NewsletterSubscribers, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("subscriber_id", sub.ID).Msg("newsletter subscription added")
	return sub.Clone(), nil
}
