package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
)

// Collections は各データセットを保存するコレクション名。
type Collections struct {
	Clinics           string
	Reviews           string
	Users             string
	Claims            string
	Submissions       string
	BlogPosts         string
	ProductReviews    string
	Subscribers       string
	Treatments        string
	Cities            string
	ProductCategories string
}

// DefaultCollections returns the collection names used when config leaves them empty.
func DefaultCollections() Collections {
	return Collections{
		Clinics:           "clinics",
		Reviews:           "reviews",
		Users:             "users",
		Claims:            "claims",
		Submissions:       "submissions",
		BlogPosts:         "blog_posts",
		ProductReviews:    "product_reviews",
		Subscribers:       "newsletter_subscribers",
		Treatments:        "treatments",
		Cities:            "cities",
		ProductCategories: "product_categories",
	}
}

// ErrSeedEmpty is returned by Load when the clinics collection has no documents.
var ErrSeedEmpty = errors.New("seed collections are empty")

// SeedRepository は MongoDB をシードデータの読み書き先として扱う。
type SeedRepository struct {
	db    *mongo.Database
	names Collections
}

func NewSeedRepository(db *mongo.Database, names Collections) *SeedRepository {
	defaults := DefaultCollections()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&names.Clinics, defaults.Clinics)
	fill(&names.Reviews, defaults.Reviews)
	fill(&names.Users, defaults.Users)
	fill(&names.Claims, defaults.Claims)
	fill(&names.Submissions, defaults.Submissions)
	fill(&names.BlogPosts, defaults.BlogPosts)
	fill(&names.ProductReviews, defaults.ProductReviews)
	fill(&names.Subscribers, defaults.Subscribers)
	fill(&names.Treatments, defaults.Treatments)
	fill(&names.Cities, defaults.Cities)
	fill(&names.ProductCategories, defaults.ProductCategories)
	return &SeedRepository{db: db, names: names}
}

// EnsureIndexes creates the unique email index on users and subscribers and
// the status index backing the pending review queue.
func (r *SeedRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{r.names.Users, mongo.IndexModel{
			Keys:    bson.D{{Key: "emailLower", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		}},
		{r.names.Subscribers, mongo.IndexModel{
			Keys:    bson.D{{Key: "emailLower", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		}},
		{r.names.Reviews, mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		}},
		{r.names.Reviews, mongo.IndexModel{
			Keys:    bson.D{{Key: "clinicId", Value: 1}},
			Options: options.Index().SetName("clinicId"),
		}},
	}
	for _, idx := range indexes {
		if _, err := r.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// Write はシードデータを書き込む。drop=true の場合は既存コレクションを削除してから投入する。
func (r *SeedRepository) Write(ctx context.Context, state application.State, drop bool) error {
	if drop {
		for _, name := range r.allCollections() {
			if err := r.db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("drop %s: %w", name, err)
			}
		}
	}

	docs := splitState(state)
	batches := []struct {
		collection string
		docs       []any
	}{
		{r.names.Clinics, toAny(docs.clinics)},
		{r.names.Reviews, toAny(docs.reviews)},
		{r.names.Users, toAny(docs.users)},
		{r.names.Claims, toAny(docs.claims)},
		{r.names.Submissions, toAny(docs.submissions)},
		{r.names.BlogPosts, toAny(docs.blogPosts)},
		{r.names.ProductReviews, toAny(docs.products)},
		{r.names.Subscribers, toAny(docs.subscribers)},
		{r.names.Treatments, toAny(docs.treatments)},
		{r.names.Cities, toAny(docs.cities)},
		{r.names.ProductCategories, toAny(docs.categories)},
	}
	for _, batch := range batches {
		if err := r.upsertAll(ctx, batch.collection, batch.docs); err != nil {
			return err
		}
	}
	return nil
}

func (r *SeedRepository) upsertAll(ctx context.Context, collection string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		id, err := documentID(doc)
		if err != nil {
			return err
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	if _, err := r.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Load はコレクションからアプリケーション状態を組み立てる。
func (r *SeedRepository) Load(ctx context.Context) (application.State, error) {
	var docs stateDocuments
	loads := []struct {
		collection string
		out        any
	}{
		{r.names.Clinics, &docs.clinics},
		{r.names.Reviews, &docs.reviews},
		{r.names.Users, &docs.users},
		{r.names.Claims, &docs.claims},
		{r.names.Submissions, &docs.submissions},
		{r.names.BlogPosts, &docs.blogPosts},
		{r.names.ProductReviews, &docs.products},
		{r.names.Subscribers, &docs.subscribers},
		{r.names.Treatments, &docs.treatments},
		{r.names.Cities, &docs.cities},
		{r.names.ProductCategories, &docs.categories},
	}
	for _, l := range loads {
		if err := r.findAll(ctx, l.collection, l.out); err != nil {
			return application.State{}, err
		}
	}
	if len(docs.clinics) == 0 {
		return application.State{}, ErrSeedEmpty
	}
	return assembleState(docs)
}

func (r *SeedRepository) findAll(ctx context.Context, collection string, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (r *SeedRepository) allCollections() []string {
	n := r.names
	return []string{
		n.Clinics, n.Reviews, n.Users, n.Claims, n.Submissions, n.BlogPosts,
		n.ProductReviews, n.Subscribers, n.Treatments, n.Cities, n.ProductCategories,
	}
}

type stateDocuments struct {
	clinics     []ClinicDocument
	reviews     []ReviewDocument
	users       []UserDocument
	claims      []ClaimDocument
	submissions []SubmissionDocument
	blogPosts   []BlogPostDocument
	products    []ProductReviewDocument
	subscribers []SubscriberDocument
	treatments  []ReferenceDocument
	cities      []ReferenceDocument
	categories  []ReferenceDocument
}

// splitState flattens clinic reviews and the pending queue into one reviews
// collection distinguished by status.
func splitState(state application.State) stateDocuments {
	var docs stateDocuments
	for i, c := range state.Clinics {
		docs.clinics = append(docs.clinics, clinicToDocument(c, i))
		for _, review := range c.Reviews {
			doc := reviewToDocument(review)
			doc.Status = string(domain.ReviewApproved)
			docs.reviews = append(docs.reviews, doc)
		}
	}
	for _, review := range state.PendingReviews {
		doc := reviewToDocument(review)
		doc.Status = string(domain.ReviewPending)
		docs.reviews = append(docs.reviews, doc)
	}
	for i, u := range state.Users {
		docs.users = append(docs.users, userToDocument(u, i))
	}
	for i, c := range state.PendingClaims {
		docs.claims = append(docs.claims, claimToDocument(c, i))
	}
	for i, s := range state.PendingSubmissions {
		docs.submissions = append(docs.submissions, submissionToDocument(s, i))
	}
	for i, p := range state.BlogPosts {
		docs.blogPosts = append(docs.blogPosts, blogPostToDocument(p, i))
	}
	for i, p := range state.ProductReviews {
		docs.products = append(docs.products, productReviewToDocument(p, i))
	}
	for i, s := range state.NewsletterSubscribers {
		docs.subscribers = append(docs.subscribers, subscriberToDocument(s, i))
	}
	for i, t := range state.Treatments {
		docs.treatments = append(docs.treatments, ReferenceDocument{ID: t.ID, Position: i, Name: t.Name, Description: t.Description})
	}
	for i, c := range state.Cities {
		docs.cities = append(docs.cities, ReferenceDocument{ID: cityID(c), Position: i, Name: c.Name, Country: c.Country, ImageURL: c.ImageURL})
	}
	for i, c := range state.ProductCategories {
		docs.categories = append(docs.categories, ReferenceDocument{ID: c.ID, Position: i, Name: c.Name, Description: c.Description})
	}
	return docs
}

// assembleState is the inverse of splitState. Approved reviews are attached
// to their clinic newest first; approved reviews of unknown clinics are dropped.
func assembleState(docs stateDocuments) (application.State, error) {
	state := application.State{
		Clinics:               make([]domain.Clinic, 0, len(docs.clinics)),
		BlogPosts:             make([]domain.BlogPost, 0, len(docs.blogPosts)),
		ProductReviews:        make([]domain.ProductReview, 0, len(docs.products)),
		PendingClaims:         make([]domain.ClaimRequest, 0, len(docs.claims)),
		PendingSubmissions:    make([]domain.ListingSubmission, 0, len(docs.submissions)),
		Users:                 make([]domain.User, 0, len(docs.users)),
		PendingReviews:        []domain.Review{},
		NewsletterSubscribers: make([]domain.NewsletterSubscriber, 0, len(docs.subscribers)),
		Treatments:            make([]domain.Treatment, 0, len(docs.treatments)),
		Cities:                make([]domain.City, 0, len(docs.cities)),
		ProductCategories:     make([]domain.ProductCategory, 0, len(docs.categories)),
	}

	byClinic := make(map[string]int, len(docs.clinics))
	for _, doc := range docs.clinics {
		byClinic[doc.ID] = len(state.Clinics)
		state.Clinics = append(state.Clinics, mapClinicDocument(doc))
	}

	reviews := append([]ReviewDocument(nil), docs.reviews...)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	for _, doc := range reviews {
		review := mapReviewDocument(doc)
		switch review.Status {
		case domain.ReviewPending:
			state.PendingReviews = append(state.PendingReviews, review)
		case domain.ReviewApproved:
			idx, ok := byClinic[review.ClinicID]
			if !ok {
				continue
			}
			state.Clinics[idx].Reviews = append(state.Clinics[idx].Reviews, review)
		default:
			return application.State{}, fmt.Errorf("review %s: unknown status %q", doc.ID, doc.Status)
		}
	}

	for _, doc := range docs.users {
		state.Users = append(state.Users, mapUserDocument(doc))
	}
	for _, doc := range docs.claims {
		claim, err := mapClaimDocument(doc)
		if err != nil {
			return application.State{}, fmt.Errorf("claim %s: %w", doc.ID, err)
		}
		state.PendingClaims = append(state.PendingClaims, claim)
	}
	for _, doc := range docs.submissions {
		state.PendingSubmissions = append(state.PendingSubmissions, mapSubmissionDocument(doc))
	}
	for _, doc := range docs.blogPosts {
		state.BlogPosts = append(state.BlogPosts, mapBlogPostDocument(doc))
	}
	for _, doc := range docs.products {
		state.ProductReviews = append(state.ProductReviews, mapProductReviewDocument(doc))
	}
	for _, doc := range docs.subscribers {
		state.NewsletterSubscribers = append(state.NewsletterSubscribers, mapSubscriberDocument(doc))
	}
	for _, doc := range docs.treatments {
		state.Treatments = append(state.Treatments, domain.Treatment{ID: doc.ID, Name: doc.Name, Description: doc.Description})
	}
	for _, doc := range docs.cities {
		state.Cities = append(state.Cities, domain.City{Name: doc.Name, Country: doc.Country, ImageURL: doc.ImageURL})
	}
	for _, doc := range docs.categories {
		state.ProductCategories = append(state.ProductCategories, domain.ProductCategory{ID: doc.ID, Name: doc.Name, Description: doc.Description})
	}
	return state, nil
}

func toAny[T any](docs []T) []any {
	out := make([]any, len(docs))
	for i := range docs {
		out[i] = docs[i]
	}
	return out
}

func documentID(doc any) (string, error) {
	switch d := doc.(type) {
	case ClinicDocument:
		return d.ID, nil
	case ReviewDocument:
		return d.ID, nil
	case UserDocument:
		return d.ID, nil
	case ClaimDocument:
		return d.ID, nil
	case SubmissionDocument:
		return d.ID, nil
	case BlogPostDocument:
		return d.ID, nil
	case ProductReviewDocument:
		return d.ID, nil
	case SubscriberDocument:
		return d.ID, nil
	case ReferenceDocument:
		return d.ID, nil
	default:
		return "", fmt.Errorf("unsupported document type %T", doc)
	}
}
