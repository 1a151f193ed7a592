package application_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/directory/seed"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/memory"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

type recordingNotifier struct {
	mu    sync.Mutex
	items []application.PendingItem
	err   error
}

func (n *recordingNotifier) PendingItem(_ context.Context, item application.PendingItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
	return n.err
}

type recordingMetrics struct {
	mu   sync.Mutex
	ops  map[string]int
	errs map[string]int
}

func (m *recordingMetrics) ObserveOperation(op string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops[op]++
	if err != nil {
		m.errs[op]++
	}
}

type fixture struct {
	svc      *application.Service
	notifier *recordingNotifier
	metrics  *recordingMetrics
	media    *blob.Memory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	media := blob.NewMemory()
	f := fixture{
		notifier: &recordingNotifier{},
		metrics:  &recordingMetrics{ops: map[string]int{}, errs: map[string]int{}},
		media:    media,
	}
	var n int
	svc, err := application.NewService(context.Background(), memory.NewStore(), application.Options{
		Seed:     seed.Initial,
		Media:    blob.NewUploader(media, "https://media.test"),
		Notifier: f.notifier,
		Metrics:  f.metrics,
		IDs: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func dataURL(contentType, body string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString([]byte(body))
}

func clinicByID(t *testing.T, snap *application.Snapshot, id string) domain.Clinic {
	t.Helper()
	for _, c := range snap.Clinics {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("clinic %s not in snapshot", id)
	return domain.Clinic{}
}

func userByEmail(snap *application.Snapshot, email string) []domain.User {
	var out []domain.User
	for _, u := range snap.Users {
		if strings.EqualFold(u.Email, email) {
			out = append(out, u)
		}
	}
	return out
}

func TestBootstrapStartsSignedOut(t *testing.T) {
	f := newFixture(t)
	snap, err := f.svc.Bootstrap(context.Background())
	require.NoError(t, err)

	assert.Nil(t, snap.CurrentUser)
	assert.Len(t, snap.Clinics, 4)
	assert.NotEmpty(t, snap.Treatments)
	assert.Equal(t, 1, f.metrics.ops[application.OpBootstrap])
}

func TestCloneIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snap, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)
	snap.Clinics[0].Name = "mutated"
	snap.Clinics[0].Reviews[0].Comment = "mutated"
	snap.Users[0].FavoriteClinicIDs = append(snap.Users[0].FavoriteClinicIDs, "x")

	saved, err := f.svc.SaveBlogPost(ctx, domain.BlogPost{Title: "Hello"})
	require.NoError(t, err)
	saved.Title = "mutated"

	user, err := f.svc.ToggleFavoriteClinic(ctx, seed.PatientUserID, seed.ClinicAnkaraID)
	require.NoError(t, err)
	user.FavoriteClinicIDs[0] = "mutated"

	again, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Estetik Line Hair Clinic", again.Clinics[0].Name)
	assert.NotEqual(t, "mutated", again.Clinics[0].Reviews[0].Comment)
	assert.Empty(t, again.Users[0].FavoriteClinicIDs)
	assert.Equal(t, "Hello", again.BlogPosts[0].Title)
	assert.Equal(t, []string{seed.ClinicIstanbulID, seed.ClinicAnkaraID}, userByEmail(again, "sam.carter@example.com")[0].FavoriteClinicIDs)
}

func TestSignUpRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.SignUp(ctx, application.SignUpCommand{Name: "A", Email: "x@y.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePatient, user.Role)
	assert.Empty(t, user.FavoriteClinicIDs)

	current, err := f.svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	_, err = f.svc.SignUp(ctx, application.SignUpCommand{Name: "B", Email: "X@Y.com", Password: "q"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDuplicateEmail))
}

func TestSignUpValidatesInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SignUp(context.Background(), application.SignUpCommand{Name: "A", Email: "nope"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = f.svc.SignUp(context.Background(), application.SignUpCommand{Name: " ", Email: "a@b.com"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

type rejectAll struct{}

func (rejectAll) Check(context.Context, domain.User, string) error { return errors.New("bad password") }

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "nobody@example.com", "pw")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthenticationFailed))

	user, err := f.svc.Login(ctx, "SAM.CARTER@example.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, seed.PatientUserID, user.ID)

	snap, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, seed.PatientUserID, snap.CurrentUser.ID)

	require.NoError(t, f.svc.Logout(ctx))
	current, err := f.svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLoginConsultsCredentialChecker(t *testing.T) {
	svc, err := application.NewService(context.Background(), memory.NewStore(), application.Options{
		Seed:        seed.Initial,
		Media:       blob.NewUploader(blob.NewMemory(), "https://media.test"),
		Credentials: rejectAll{},
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "sam.carter@example.com", "pw")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthenticationFailed))
	current, _ := svc.CurrentUser(context.Background())
	assert.Nil(t, current)
}

func TestNewServiceRequiresMedia(t *testing.T) {
	_, err := application.NewService(context.Background(), memory.NewStore(), application.Options{Seed: seed.Initial})
	assert.Error(t, err)
}

func TestResetRestoresSeedAndSignsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "sam.carter@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, f.svc.DenyReview(ctx, seed.PendingReviewID))

	require.NoError(t, f.svc.Reset(ctx))

	snap, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.CurrentUser)
	assert.Len(t, snap.PendingReviews, len(seed.Initial().PendingReviews))
}

func TestFindClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clinic, err := f.svc.FindClinic(ctx, seed.ClinicIstanbulID)
	require.NoError(t, err)
	assert.Equal(t, seed.ClinicIstanbulID, clinic.ID)

	_, err = f.svc.FindClinic(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err, apperrors.EntityClinic))
}
