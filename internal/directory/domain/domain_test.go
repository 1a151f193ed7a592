package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

func TestTierMediaCapability(t *testing.T) {
	tests := []struct {
		tier    Tier
		gallery int
		video   string
		wantErr bool
	}{
		{TierBasic, 0, "", false},
		{TierBasic, 1, "", true},
		{TierBasic, 0, "https://video.example.com/a.mp4", true},
		{TierPremium, 5, "", false},
		{TierPremium, 6, "", true},
		{TierPremium, 2, "https://video.example.com/a.mp4", true},
		{TierGold, 40, "https://video.example.com/a.mp4", false},
	}

	for _, tt := range tests {
		gallery := make([]string, tt.gallery)
		for i := range gallery {
			gallery[i] = "https://img.example.com/x.jpg"
		}
		err := tt.tier.CheckMedia(gallery, tt.video)
		if tt.wantErr {
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "%s gallery=%d", tt.tier, tt.gallery)
		} else {
			assert.NoError(t, err, "%s gallery=%d", tt.tier, tt.gallery)
		}
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("gold")
	require.NoError(t, err)
	assert.Equal(t, TierGold, tier)

	_, err = ParseTier("platinum")
	assert.Error(t, err)
}

func TestUserToggleFavoriteIsSymmetric(t *testing.T) {
	u := &User{ID: "u1", FavoriteClinicIDs: []string{"a", "b"}}

	assert.True(t, u.ToggleFavorite("c"))
	assert.Equal(t, []string{"a", "b", "c"}, u.FavoriteClinicIDs)

	assert.False(t, u.ToggleFavorite("c"))
	assert.Equal(t, []string{"a", "b"}, u.FavoriteClinicIDs)
}

func TestUserCloneIsDeep(t *testing.T) {
	u := &User{ID: "u1", FavoriteClinicIDs: []string{"a"}}
	u.SetJournalEntry(MilestonePreOp, JournalEntry{Notes: "before"})

	c := u.Clone()
	c.FavoriteClinicIDs[0] = "z"
	c.SetJournalEntry(MilestonePreOp, JournalEntry{Notes: "changed"})

	assert.Equal(t, "a", u.FavoriteClinicIDs[0])
	assert.Equal(t, "before", u.Journal[MilestonePreOp].Notes)
}

func TestClinicCloneIsDeep(t *testing.T) {
	lat := 41.0
	c := &Clinic{
		ID:            "1",
		Location:      Location{Latitude: &lat},
		GalleryImages: []string{"g1"},
		Reviews:       []Review{{ID: "r1", Rating: 5}},
	}

	cp := c.Clone()
	*cp.Location.Latitude = 0
	cp.GalleryImages[0] = "x"
	cp.Reviews[0].Rating = 1

	assert.Equal(t, 41.0, *c.Location.Latitude)
	assert.Equal(t, "g1", c.GalleryImages[0])
	assert.Equal(t, 5, c.Reviews[0].Rating)
}

func TestClinicAttachReviewPrependsAndAggregates(t *testing.T) {
	c := &Clinic{Reviews: []Review{{ID: "old", Rating: 4, Status: ReviewApproved}}}

	c.AttachReview(Review{ID: "new", Rating: 5, Status: ReviewPending})

	require.Len(t, c.Reviews, 2)
	assert.Equal(t, "new", c.Reviews[0].ID)
	assert.Equal(t, ReviewApproved, c.Reviews[0].Status)
	assert.Equal(t, 2, c.ReviewCount)
	assert.Equal(t, 4.5, c.Rating)
}

func TestNewVerification(t *testing.T) {
	v, err := NewVerification("email", "")
	require.NoError(t, err)
	_, ok := v.Document()
	assert.False(t, ok)

	_, err = NewVerification("document", "  ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	v, err = NewVerification("document", "https://files.example.com/license.pdf")
	require.NoError(t, err)
	ref, ok := v.Document()
	assert.True(t, ok)
	assert.Equal(t, "https://files.example.com/license.pdf", ref)

	_, err = NewVerification("fax", "")
	assert.Error(t, err)
}

func TestVerificationJSON(t *testing.T) {
	data, err := json.Marshal(DocumentVerification("doc-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"verificationMethod":"document","documentProof":"doc-1"}`, string(data))

	var v Verification
	require.NoError(t, json.Unmarshal([]byte(`{"verificationMethod":"email"}`), &v))
	assert.Equal(t, VerificationByEmail, v.Method())
}

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Jane@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Jane@Example.com", email.String())
	assert.Equal(t, "jane@example.com", email.Key())

	for _, bad := range []string{"", "not-an-email", "Jane <jane@example.com>"} {
		_, err := NewEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMilestone(t *testing.T) {
	m, err := ParseMilestone("month6")
	require.NoError(t, err)
	assert.Equal(t, MilestoneMonth6, m)

	_, err = ParseMilestone("month2")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestMilestonesRoundTrip(t *testing.T) {
	all := Milestones()
	require.Len(t, all, 6)
	assert.Equal(t, MilestonePreOp, all[0])
	assert.Equal(t, MilestoneMonth12, all[len(all)-1])

	for _, m := range all {
		parsed, err := ParseMilestone(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	all[0] = "mutated"
	assert.Equal(t, MilestonePreOp, Milestones()[0])
}

func TestCompactGallery(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CompactGallery([]string{"", "a", "  ", "b"}))
	assert.Nil(t, CompactGallery(nil))
}
