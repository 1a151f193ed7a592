package domain

import (
	"strings"

	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

type Tier string

const (
	TierBasic   Tier = "Basic"
	TierPremium Tier = "Premium"
	TierGold    Tier = "Gold"
)

// UnboundedGallery marks a capability with no gallery size limit.
const UnboundedGallery = -1

const premiumGalleryLimit = 5

// MediaCapability describes what a clinic listing may show for its tier.
type MediaCapability struct {
	MaxGalleryImages int
	VideoAllowed     bool
}

func (c MediaCapability) GalleryAllowed() bool {
	return c.MaxGalleryImages != 0
}

// Allows reports whether n gallery images fit the capability.
func (c MediaCapability) Allows(n int) bool {
	if c.MaxGalleryImages == UnboundedGallery {
		return true
	}
	return n <= c.MaxGalleryImages
}

func ParseTier(value string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "basic":
		return TierBasic, nil
	case "premium":
		return TierPremium, nil
	case "gold":
		return TierGold, nil
	}
	return "", apperrors.NewValidationErrorf("unknown tier: %s", value)
}

func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierPremium, TierGold:
		return true
	}
	return false
}

// Paid reports whether the tier is sold through the subscription flow.
func (t Tier) Paid() bool {
	return t == TierPremium || t == TierGold
}

func (t Tier) MediaCapability() MediaCapability {
	switch t {
	case TierPremium:
		return MediaCapability{MaxGalleryImages: premiumGalleryLimit}
	case TierGold:
		return MediaCapability{MaxGalleryImages: UnboundedGallery, VideoAllowed: true}
	default:
		return MediaCapability{}
	}
}

// CheckMedia validates gallery and video fields against the tier.
func (t Tier) CheckMedia(gallery []string, videoURL string) error {
	capability := t.MediaCapability()
	if len(gallery) > 0 && !capability.Allows(len(gallery)) {
		if !capability.GalleryAllowed() {
			return apperrors.NewValidationErrorf("%s tier does not include a gallery", t)
		}
		return apperrors.NewValidationErrorf("%s tier allows at most %d gallery images", t, capability.MaxGalleryImages)
	}
	if strings.TrimSpace(videoURL) != "" && !capability.VideoAllowed {
		return apperrors.NewValidationErrorf("%s tier does not include video", t)
	}
	return nil
}
