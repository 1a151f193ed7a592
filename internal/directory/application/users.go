package application

import (
	"context"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// ToggleFavoriteClinic adds or removes clinicID from the user's favorites.
func (s *Service) ToggleFavoriteClinic(ctx context.Context, userID, clinicID string) (_ *domain.User, err error) {
	defer s.observe(OpToggleFavorite, time.Now(), &err)
	if clinicID, err = domain.RequireText("clinicId", clinicID); err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Favorite); err != nil {
		return nil, err
	}

	var user domain.User
	var added bool
	err = s.store.Update(ctx, func(st *State) error {
		i := st.userIndex(userID)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityUser, userID)
		}
		added = st.Users[i].ToggleFavorite(clinicID)
		user = st.Users[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user_id", userID).Str("clinic_id", clinicID).Bool("favorite", added).Msg("favorite toggled")
	return user.Clone(), nil
}

// SaveJournalEntry records the patient's notes for a recovery milestone.
func (s *Service) SaveJournalEntry(ctx context.Context, userID, milestone string, cmd JournalEntryCommand) (_ *domain.User, err error) {
	defer s.observe(OpSaveJournalEntry, time.Now(), &err)
	m, err := domain.ParseMilestone(milestone)
	if err != nil {
		return nil, err
	}
	if _, err = s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err = s.wait(ctx, s.latency.Journal); err != nil {
		return nil, err
	}
	photo, err := s.uploadLocal(ctx, cmd.PhotoURL)
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = s.store.Update(ctx, func(st *State) error {
		i := st.userIndex(userID)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityUser, userID)
		}
		st.Users[i].SetJournalEntry(m, domain.JournalEntry{
			Date:     s.now(),
			Notes:    cmd.Notes,
			PhotoURL: photo,
		})
		user = st.Users[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("milestone", string(m)).Msg("journal entry saved")
	return user.Clone(), nil
}

func (s *Service) findUser(ctx context.Context, id string) (*domain.User, error) {
	var user *domain.User
	err := s.store.View(ctx, func(st State) error {
		i := st.userIndex(id)
		if i < 0 {
			return apperrors.NewNotFoundError(apperrors.EntityUser, id)
		}
		user = st.Users[i].Clone()
		return nil
	})
	return user, err
}
