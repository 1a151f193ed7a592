package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

func TestInitialRespectsDirectoryInvariants(t *testing.T) {
	st := Initial()

	assert.Empty(t, st.SessionUserID)

	for _, c := range st.Clinics {
		assert.NoError(t, c.Tier.CheckMedia(c.GalleryImages, c.VideoURL), c.ID)
		assert.Equal(t, len(c.Reviews), c.ReviewCount, c.ID)
		for _, r := range c.Reviews {
			assert.Equal(t, domain.ReviewApproved, r.Status)
			assert.Equal(t, c.ID, r.ClinicID)
		}
	}
	for _, r := range st.PendingReviews {
		assert.Equal(t, domain.ReviewPending, r.Status)
	}

	emails := map[string]bool{}
	for _, u := range st.Users {
		key := domain.EmailKey(u.Email)
		assert.False(t, emails[key], "duplicate email %s", u.Email)
		emails[key] = true
	}
}

func TestInitialReturnsIndependentCopies(t *testing.T) {
	a := Initial()
	a.Clinics[0].Name = "changed"
	a.Users[2].FavoriteClinicIDs[0] = "changed"

	b := Initial()
	assert.NotEqual(t, "changed", b.Clinics[0].Name)
	assert.NotEqual(t, "changed", b.Users[2].FavoriteClinicIDs[0])
}
