package domain

import "time"

type BlogPost struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Summary  string    `json:"summary"`
	Content  string    `json:"content"`
	ImageURL string    `json:"imageUrl"`
}

func (p *BlogPost) Clone() *BlogPost {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

type ProductReview struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Summary       string  `json:"summary"`
	FullReview    string  `json:"fullReview"`
	AffiliateLink string  `json:"affiliateLink"`
	ImageURL      string  `json:"imageUrl"`
	CategoryID    string  `json:"categoryId"`
}

func (p *ProductReview) Clone() *ProductReview {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

type NewsletterSubscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

func (n *NewsletterSubscriber) Clone() *NewsletterSubscriber {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}

// Reference data shown alongside listings.

type Treatment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type City struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	ImageURL string `json:"imageUrl"`
}

type ProductCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
