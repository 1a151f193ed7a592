// Package seed holds the datasets the directory starts with.
package seed

import (
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

// Well-known seed ids, handy in tests and local tooling.
const (
	AdminUserID   = "user-admin"
	OwnerUserID   = "user-owner"
	PatientUserID = "user-patient"

	ClinicIstanbulID = "clinic-1"
	ClinicAnkaraID   = "clinic-2"
	ClinicBangkokID  = "clinic-3"
	ClinicMadridID   = "clinic-4"

	PendingReviewID = "review-pending-1"
	PendingClaimID  = "claim-1"
)

var baseTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return baseTime.AddDate(0, 0, n)
}

func ptr(v float64) *float64 {
	return &v
}

// Initial returns a fresh copy of the seed state. Nobody is signed in.
func Initial() application.State {
	return application.State{
		Clinics:               clinics(),
		BlogPosts:             blogPosts(),
		ProductReviews:        productReviews(),
		PendingClaims:         pendingClaims(),
		PendingSubmissions:    []domain.ListingSubmission{},
		Users:                 users(),
		PendingReviews:        pendingReviews(),
		NewsletterSubscribers: []domain.NewsletterSubscriber{},
		Treatments:            Treatments(),
		Cities:                Cities(),
		ProductCategories:     ProductCategories(),
	}
}

func users() []domain.User {
	return []domain.User{
		{
			ID:                AdminUserID,
			Name:              "Directory Admin",
			Email:             "admin@hairline.example",
			Role:              domain.RoleAdmin,
			FavoriteClinicIDs: []string{},
			CreatedAt:         day(0),
		},
		{
			ID:                OwnerUserID,
			Name:              "Dr. Emre Yilmaz",
			Email:             "emre@estetikline.example",
			Role:              domain.RoleClinicOwner,
			FavoriteClinicIDs: []string{},
			CreatedAt:         day(1),
		},
		{
			ID:                PatientUserID,
			Name:              "Sam Carter",
			Email:             "sam.carter@example.com",
			Role:              domain.RolePatient,
			FavoriteClinicIDs: []string{ClinicIstanbulID},
			Journal: map[domain.Milestone]domain.JournalEntry{
				domain.MilestonePreOp: {
					Date:  day(10),
					Notes: "Norwood 3 at the crown. Consultation booked.",
				},
			},
			CreatedAt: day(2),
		},
	}
}

func clinics() []domain.Clinic {
	return []domain.Clinic{
		{
			ID:   ClinicIstanbulID,
			Name: "Estetik Line Hair Clinic",
			Tier: domain.TierGold,
			Location: domain.Location{
				City:      "Istanbul",
				Country:   "Turkey",
				Address:   "Halaskargazi Cd. 120, Sisli",
				Latitude:  ptr(41.0602),
				Longitude: ptr(28.9877),
			},
			Rating:           5,
			ReviewCount:      1,
			ShortDescription: "Sapphire FUE and DHI with a dedicated aftercare team.",
			LongDescription:  "Estetik Line has performed hair restoration in Sisli for over a decade. Packages include hotel, transfers and a twelve month follow-up.",
			TreatmentIDs:     []string{"fue", "dhi", "prp"},
			Contact:          domain.Contact{Phone: "+90 212 555 0101", Website: "https://estetikline.example"},
			Reviews: []domain.Review{
				{
					ID:        "review-1",
					UserID:    PatientUserID,
					ClinicID:  ClinicIstanbulID,
					Rating:    5,
					Comment:   "Natural hairline, very clear communication before and after.",
					CreatedAt: day(20),
					Status:    domain.ReviewApproved,
				},
			},
			ImageURL:           "https://images.hairline.example/clinics/estetik-line.jpg",
			GalleryImages:      []string{"https://images.hairline.example/clinics/estetik-line-1.jpg", "https://images.hairline.example/clinics/estetik-line-2.jpg"},
			VideoURL:           "https://video.hairline.example/clinics/estetik-line.mp4",
			Verified:           true,
			OwnerID:            OwnerUserID,
			SubscriptionStatus: domain.SubscriptionActive,
			BillingCustomerID:  "cus_seed_estetikline",
			UpdatedAt:          day(20),
		},
		{
			ID:   ClinicAnkaraID,
			Name: "Capital Hair Restoration",
			Tier: domain.TierPremium,
			Location: domain.Location{
				City:    "Ankara",
				Country: "Turkey",
				Address: "Tunali Hilmi Cd. 45, Cankaya",
			},
			ShortDescription: "Small-team FUE clinic focused on high-density grafting.",
			LongDescription:  "Capital Hair Restoration limits itself to two procedures a day so the lead surgeon handles every extraction.",
			TreatmentIDs:     []string{"fue", "beard"},
			Contact:          domain.Contact{Phone: "+90 312 555 0145", Website: "https://capitalhair.example"},
			Reviews:          []domain.Review{},
			ImageURL:         "https://images.hairline.example/clinics/capital-hair.jpg",
			GalleryImages:    []string{"https://images.hairline.example/clinics/capital-hair-1.jpg"},
			Verified:         true,
			UpdatedAt:        day(5),
		},
		{
			ID:   ClinicBangkokID,
			Name: "Siam Follicle Centre",
			Tier: domain.TierBasic,
			Location: domain.Location{
				City:    "Bangkok",
				Country: "Thailand",
				Address: "88 Sukhumvit Soi 11, Khlong Toei",
			},
			ShortDescription: "FUT and FUE with English-speaking coordinators.",
			LongDescription:  "A long-running clinic offering both strip and follicular unit extraction.",
			TreatmentIDs:     []string{"fue", "fut"},
			Contact:          domain.Contact{Phone: "+66 2 555 0188", Website: "https://siamfollicle.example"},
			Reviews:          []domain.Review{},
			ImageURL:         "https://images.hairline.example/clinics/siam-follicle.jpg",
			UpdatedAt:        day(7),
		},
		{
			ID:   ClinicMadridID,
			Name: "Clinica Capilar Retiro",
			Tier: domain.TierBasic,
			Location: domain.Location{
				City:    "Madrid",
				Country: "Spain",
				Address: "Calle de Alcala 95",
			},
			ShortDescription: "Medical hair loss treatment and eyebrow restoration.",
			LongDescription:  "Combines PRP therapy with transplant surgery for early-stage hair loss.",
			TreatmentIDs:     []string{"prp", "eyebrow"},
			Contact:          domain.Contact{Phone: "+34 91 555 0123", Website: "https://capilarretiro.example"},
			Reviews:          []domain.Review{},
			ImageURL:         "https://images.hairline.example/clinics/capilar-retiro.jpg",
			UpdatedAt:        day(9),
		},
	}
}

func pendingReviews() []domain.Review {
	return []domain.Review{
		{
			ID:        PendingReviewID,
			UserID:    PatientUserID,
			ClinicID:  ClinicAnkaraID,
			Rating:    4,
			Comment:   "Good result at six months, the hotel was further away than advertised.",
			CreatedAt: day(30),
			Status:    domain.ReviewPending,
			Anonymous: true,
		},
	}
}

func pendingClaims() []domain.ClaimRequest {
	return []domain.ClaimRequest{
		{
			ID:             PendingClaimID,
			ClinicID:       ClinicBangkokID,
			ClinicName:     "Siam Follicle Centre",
			SubmitterName:  "Dr. Niran Chai",
			SubmitterTitle: "Medical Director",
			SubmitterEmail: "niran@siamfollicle.example",
			Verification:   domain.EmailVerification(),
			CreatedAt:      day(25),
		},
	}
}

func blogPosts() []domain.BlogPost {
	return []domain.BlogPost{
		{
			ID:       "post-1",
			Title:    "FUE vs DHI: what actually differs",
			Author:   "Hairline Editorial",
			Date:     day(12),
			Summary:  "Both extract single follicles. The difference is in how grafts are implanted.",
			Content:  "DHI uses a Choi implanter pen to place grafts without pre-made incisions...",
			ImageURL: "https://images.hairline.example/blog/fue-vs-dhi.jpg",
		},
		{
			ID:       "post-2",
			Title:    "The first twelve months after a transplant",
			Author:   "Hairline Editorial",
			Date:     day(4),
			Summary:  "Shock loss, the ugly duckling phase and when to expect final density.",
			Content:  "Most patients see transplanted hair shed within the first month...",
			ImageURL: "https://images.hairline.example/blog/twelve-months.jpg",
		},
	}
}

func productReviews() []domain.ProductReview {
	return []domain.ProductReview{
		{
			ID:            "product-1",
			Name:          "Minoxidil 5% Foam",
			Rating:        4.5,
			Summary:       "The standard topical for maintaining native hair after surgery.",
			FullReview:    "Foam dries faster than the solution and causes less scalp irritation...",
			AffiliateLink: "https://shop.example.com/minoxidil-foam",
			ImageURL:      "https://images.hairline.example/products/minoxidil.jpg",
			CategoryID:    "topicals",
		},
		{
			ID:            "product-2",
			Name:          "Low-Level Laser Cap",
			Rating:        3.5,
			Summary:       "Useful as an adjunct, not a replacement for medication.",
			FullReview:    "Evidence for LLLT is modest but consistent for mild thinning...",
			AffiliateLink: "https://shop.example.com/laser-cap",
			ImageURL:      "https://images.hairline.example/products/laser-cap.jpg",
			CategoryID:    "devices",
		},
	}
}

func Treatments() []domain.Treatment {
	return []domain.Treatment{
		{ID: "fue", Name: "FUE", Description: "Follicular unit extraction of individual grafts."},
		{ID: "dhi", Name: "DHI", Description: "Direct hair implantation with an implanter pen."},
		{ID: "fut", Name: "FUT", Description: "Strip harvesting followed by graft dissection."},
		{ID: "prp", Name: "PRP", Description: "Platelet-rich plasma injections to support growth."},
		{ID: "beard", Name: "Beard Transplant", Description: "Grafting into the beard and moustache area."},
		{ID: "eyebrow", Name: "Eyebrow Transplant", Description: "Fine single-hair grafts for brow restoration."},
	}
}

func Cities() []domain.City {
	return []domain.City{
		{Name: "Istanbul", Country: "Turkey", ImageURL: "https://images.hairline.example/cities/istanbul.jpg"},
		{Name: "Ankara", Country: "Turkey", ImageURL: "https://images.hairline.example/cities/ankara.jpg"},
		{Name: "Bangkok", Country: "Thailand", ImageURL: "https://images.hairline.example/cities/bangkok.jpg"},
		{Name: "Madrid", Country: "Spain", ImageURL: "https://images.hairline.example/cities/madrid.jpg"},
	}
}

func ProductCategories() []domain.ProductCategory {
	return []domain.ProductCategory{
		{ID: "topicals", Name: "Topicals", Description: "Foams, solutions and serums."},
		{ID: "devices", Name: "Devices", Description: "Laser caps, combs and microneedling tools."},
		{ID: "supplements", Name: "Supplements", Description: "Vitamins and nutritional support."},
	}
}
