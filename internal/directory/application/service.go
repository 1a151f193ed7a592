package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Operation names used for latency, metrics and logs.
const (
	OpBootstrap           = "bootstrap"
	OpSignUp              = "sign_up"
	OpLogin               = "login"
	OpLogout              = "logout"
	OpSubmitReview        = "submit_review"
	OpApproveReview       = "approve_review"
	OpDenyReview          = "deny_review"
	OpSubmitClaim         = "submit_claim"
	OpApproveClaim        = "approve_claim"
	OpDenyClaim           = "deny_claim"
	OpSubmitListing       = "submit_listing"
	OpApproveSubmission   = "approve_submission"
	OpDenySubmission      = "deny_submission"
	OpSaveClinic          = "save_clinic"
	OpSaveBlogPost        = "save_blog_post"
	OpSaveProductReview   = "save_product_review"
	OpDeleteBlogPost      = "delete_blog_post"
	OpDeleteProductReview = "delete_product_review"
	OpUploadFile          = "upload_file"
	OpToggleFavorite      = "toggle_favorite"
	OpSaveJournalEntry    = "save_journal_entry"
	OpSubscribeNewsletter = "subscribe_newsletter"
	OpProcessSubscription = "process_subscription"
	OpCancelSubscription  = "cancel_subscription"
)

// Latency is the simulated round trip of each kind of operation.
type Latency struct {
	Bootstrap    time.Duration
	Auth         time.Duration
	Logout       time.Duration
	Submit       time.Duration
	Moderate     time.Duration
	ApproveClaim time.Duration
	Save         time.Duration
	Delete       time.Duration
	Upload       time.Duration
	Favorite     time.Duration
	Newsletter   time.Duration
	Journal      time.Duration
	Subscription time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Bootstrap:    1000 * time.Millisecond,
		Auth:         500 * time.Millisecond,
		Logout:       200 * time.Millisecond,
		Submit:       400 * time.Millisecond,
		Moderate:     300 * time.Millisecond,
		ApproveClaim: 500 * time.Millisecond,
		Save:         500 * time.Millisecond,
		Delete:       300 * time.Millisecond,
		Upload:       800 * time.Millisecond,
		Favorite:     200 * time.Millisecond,
		Newsletter:   300 * time.Millisecond,
		Journal:      300 * time.Millisecond,
		Subscription: 1500 * time.Millisecond,
	}
}

// Scale multiplies every delay by factor. Zero or less disables latency.
func (l Latency) Scale(factor float64) Latency {
	if factor <= 0 {
		return Latency{}
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
	return Latency{
		Bootstrap:    scale(l.Bootstrap),
		Auth:         scale(l.Auth),
		Logout:       scale(l.Logout),
		Submit:       scale(l.Submit),
		Moderate:     scale(l.Moderate),
		ApproveClaim: scale(l.ApproveClaim),
		Save:         scale(l.Save),
		Delete:       scale(l.Delete),
		Upload:       scale(l.Upload),
		Favorite:     scale(l.Favorite),
		Newsletter:   scale(l.Newsletter),
		Journal:      scale(l.Journal),
		Subscription: scale(l.Subscription),
	}
}

// DefaultNotifyTimeout bounds a single background moderation notification.
const DefaultNotifyTimeout = 30 * time.Second

// Options wires the service collaborators. Seed and Media are required.
type Options struct {
	Seed          func() State
	Media         MediaUploader
	Notifier      ModerationNotifier
	NotifyTimeout time.Duration
	Metrics       MetricsRecorder
	Credentials   CredentialChecker
	Latency       Latency
	Clock         func() time.Time
	IDs           func() string
	Logger        zerolog.Logger
}

// Service is the directory's data store and workflow engine.
type Service struct {
	store       StateStore
	seed        func() State
	media       MediaUploader
	notifier    ModerationNotifier
	notifyWait  time.Duration
	inflight    sync.WaitGroup
	metrics     MetricsRecorder
	credentials CredentialChecker
	latency     Latency
	now         func() time.Time
	newID       func() string
	logger      zerolog.Logger
}

var _ DirectoryService = (*Service)(nil)

// NewService loads the seed into store and returns a ready service.
func NewService(ctx context.Context, store StateStore, opts Options) (*Service, error) {
	s := &Service{
		store:       store,
		seed:        opts.Seed,
		media:       opts.Media,
		notifier:    opts.Notifier,
		notifyWait:  opts.NotifyTimeout,
		metrics:     opts.Metrics,
		credentials: opts.Credentials,
		latency:     opts.Latency,
		now:         opts.Clock,
		newID:       opts.IDs,
		logger:      opts.Logger,
	}
	if s.store == nil || s.media == nil {
		return nil, errors.New("directory service requires a state store and a media uploader")
	}
	if s.seed == nil {
		s.seed = func() State { return State{} }
	}
	if s.notifyWait <= 0 {
		s.notifyWait = DefaultNotifyTimeout
	}
	if s.credentials == nil {
		s.credentials = AcceptAnyPassword{}
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if err := s.store.Replace(ctx, s.seed()); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset restores the seed datasets and signs everyone out.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Replace(ctx, s.seed()); err != nil {
		return err
	}
	s.logger.Info().Msg("directory state reset to seed")
	return nil
}

// wait simulates the round trip. A cancelled context aborts before any mutation.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	if s.metrics == nil {
		return
	}
	var err error
	if errp != nil {
		err = *errp
	}
	s.metrics.ObserveOperation(op, time.Since(start), err)
}

// notify sends in the background after commit, detached from the caller's
// cancellation. Delivery problems never fail the operation.
func (s *Service) notify(ctx context.Context, item PendingItem) {
	if s.notifier == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyWait)
		defer cancel()
		if err := s.notifier.PendingItem(nctx, item); err != nil {
			s.logger.Warn().Err(err).Str("kind", string(item.Kind)).Str("id", item.ID).Msg("moderation notification failed")
		}
	}()
}

// WaitNotifications blocks until background notifications finish or ctx ends.
func (s *Service) WaitNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
