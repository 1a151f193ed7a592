package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// Bootstrap returns a copy of every collection plus the signed-in user.
func (s *Service) Bootstrap(ctx context.Context) (_ *Snapshot, err error) {
	defer s.observe(OpBootstrap, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Bootstrap); err != nil {
		return nil, err
	}

	var snap Snapshot
	err = s.store.View(ctx, func(st State) error {
		snap = Snapshot{
			Clinics:               st.Clinics,
			BlogPosts:             st.BlogPosts,
			ProductReviews:        st.ProductReviews,
			PendingClaims:         st.PendingClaims,
			PendingSubmissions:    st.PendingSubmissions,
			Users:                 st.Users,
			PendingReviews:        st.PendingReviews,
			NewsletterSubscribers: st.NewsletterSubscribers,
			Treatments:            st.Treatments,
			Cities:                st.Cities,
			ProductCategories:     st.ProductCategories,
			CurrentUser:           st.SessionUser(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user *domain.User
	err := s.store.View(ctx, func(st State) error {
		user = st.SessionUser()
		return nil
	})
	return user, err
}

func (s *Service) SignUp(ctx context.Context, cmd SignUpCommand) (_ *domain.User, err error) {
	defer s.observe(OpSignUp, time.Now(), &err)
	name, err := domain.RequireText("name", cmd.Name)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Auth); err != nil {
		return nil, err
	}

	var created domain.User
	err = s.store.Update(ctx, func(st *State) error {
		if st.userIndexByEmail(email.String()) >= 0 {
			return apperrors.NewDuplicateEmailError(email.String())
		}
		created = domain.User{
			ID:                s.newID(),
			Name:              name,
			Email:             email.String(),
			Role:              domain.RolePatient,
			FavoriteClinicIDs: []string{},
			CreatedAt:         s.now(),
		}
		st.Users = append(st.Users, created)
		st.SessionUserID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created.Clone(), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (_ *domain.User, err error) {
	defer s.observe(OpLogin, time.Now(), &err)
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Auth); err != nil {
		return nil, err
	}

	var user domain.User
	err = s.store.Update(ctx, func(st *State) error {
		i := st.userIndexByEmail(addr.String())
		if i < 0 {
			return apperrors.NewAuthenticationFailedError("invalid email or password", nil)
		}
		if err := s.credentials.Check(ctx, st.Users[i], password); err != nil {
			return apperrors.NewAuthenticationFailedError("invalid email or password", err)
		}
		user = st.Users[i]
		st.SessionUserID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user.Clone(), nil
}

func (s *Service) Logout(ctx context.Context) (err error) {
	defer s.observe(OpLogout, time.Now(), &err)
	if err = s.wait(ctx, s.latency.Logout); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *State) error {
		st.SessionUserID = ""
		return nil
	})
}
