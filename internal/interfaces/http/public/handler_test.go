package public

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/directory/seed"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/memory"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

const mediaBaseURL = "https://media.test/media"

type testServer struct {
	router  http.Handler
	service *application.Service
	tokens  *common.TokenManager
}

func newTestServer(t *testing.T, rateLimit int) testServer {
	t.Helper()
	logger := zerolog.Nop()
	media := blob.NewMemory()
	svc, err := application.NewService(context.Background(), memory.NewStore(), application.Options{
		Seed:   seed.Initial,
		Media:  blob.NewUploader(media, mediaBaseURL),
		Logger: logger,
	})
	require.NoError(t, err)

	tokens := common.NewTokenManager("hairline-test", []byte("secret"), time.Hour)
	handler := NewHandler(Config{
		Logger:  logger,
		Service: svc,
		Tokens:  tokens,
		Limiter: common.NewRateLimiter(nil, rateLimit, time.Hour, logger),
		Media:   media,
	})
	router := chi.NewRouter()
	handler.Register(router, common.Authenticate(tokens, logger))
	return testServer{router: router, service: svc, tokens: tokens}
}

func (s testServer) tokenFor(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	token, err := s.tokens.Issue(domain.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestBootstrapReturnsSnapshot(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(t, http.MethodGet, "/bootstrap", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	snapshot := decode[application.Snapshot](t, rec)
	assert.Len(t, snapshot.Clinics, 4)
	assert.Len(t, snapshot.PendingReviews, 1)
	assert.Nil(t, snapshot.CurrentUser)
}

func TestClinicDetail(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(t, http.MethodGet, "/clinics/"+seed.ClinicIstanbulID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seed.ClinicIstanbulID, decode[domain.Clinic](t, rec).ID)

	rec = srv.do(t, http.MethodGet, "/clinics/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignUpLoginLogout(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(t, http.MethodPost, "/auth/signup", "", signUpRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[authResponse](t, rec)
	assert.Equal(t, domain.RolePatient, created.User.Role)
	principal, err := srv.tokens.Parse(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, principal.ID)

	rec = srv.do(t, http.MethodPost, "/auth/signup", "", signUpRequest{Name: "Ada 2", Email: "ADA@example.com", Password: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[sessionResponse](t, rec)
	require.NotNil(t, session.User)
	assert.Equal(t, created.User.ID, session.User.ID)

	rec = srv.do(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, decode[sessionResponse](t, srv.do(t, http.MethodGet, "/auth/session", "", nil)).User)

	rec = srv.do(t, http.MethodPost, "/auth/login", "", loginRequest{Email: "nobody@example.com", Password: "pw"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/auth/login", "", loginRequest{Email: "sam.carter@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seed.PatientUserID, decode[authResponse](t, rec).User.ID)
}

func TestReviewCreate(t *testing.T) {
	srv := newTestServer(t, 0)
	body := reviewCreateRequest{ClinicID: seed.ClinicMadridID, Rating: 5, Comment: "Great follow-up care"}

	rec := srv.do(t, http.MethodPost, "/reviews", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)
	rec = srv.do(t, http.MethodPost, "/reviews", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[domain.Review](t, rec)
	assert.Equal(t, seed.PatientUserID, review.UserID)
	assert.Equal(t, domain.ReviewPending, review.Status)

	rec = srv.do(t, http.MethodPost, "/reviews", token, body)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = srv.do(t, http.MethodPost, "/reviews", token, reviewCreateRequest{ClinicID: seed.ClinicMadridID, Rating: 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewCreateRetriesAfterRejection(t *testing.T) {
	srv := newTestServer(t, 0)
	token := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)
	invalid := reviewCreateRequest{ClinicID: seed.ClinicMadridID, Rating: 9, Comment: "typo in rating"}

	rec := srv.do(t, http.MethodPost, "/reviews", token, invalid)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = srv.do(t, http.MethodPost, "/reviews", token, invalid)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "rejected reviews are evaluated again")
	assert.NotContains(t, rec.Body.String(), "duplicate_ignored")
}

func TestReviewCreateIsRateLimited(t *testing.T) {
	srv := newTestServer(t, 1)
	token := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)

	rec := srv.do(t, http.MethodPost, "/reviews", token, reviewCreateRequest{ClinicID: seed.ClinicMadridID, Rating: 4, Comment: "one"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/reviews", token, reviewCreateRequest{ClinicID: seed.ClinicMadridID, Rating: 4, Comment: "two"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClaimCreate(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(t, http.MethodPost, "/claims", "", claimCreateRequest{
		ClinicID:           seed.ClinicMadridID,
		SubmitterName:      "Lucia",
		SubmitterEmail:     "lucia@capilar.example",
		VerificationMethod: "document",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	proof := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	rec = srv.do(t, http.MethodPost, "/claims", "", claimCreateRequest{
		ClinicID:           seed.ClinicMadridID,
		SubmitterName:      "Lucia",
		SubmitterEmail:     "lucia@capilar.example",
		VerificationMethod: "document",
		DocumentProof:      proof,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	claim := decode[domain.ClaimRequest](t, rec)
	ref, ok := claim.Verification.Document()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ref, mediaBaseURL+"/"))
	assert.NotEmpty(t, claim.ClinicName)
}

func TestSubmissionCreateLinksAuthor(t *testing.T) {
	srv := newTestServer(t, 0)
	token := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)

	rec := srv.do(t, http.MethodPost, "/submissions", token, submissionCreateRequest{ClinicName: "Lisbon Hair", ClinicCity: "Lisbon"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, seed.PatientUserID, decode[domain.ListingSubmission](t, rec).SubmitterID)

	rec = srv.do(t, http.MethodPost, "/submissions", "", submissionCreateRequest{ClinicName: "No City"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsletterSubscribe(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(t, http.MethodPost, "/newsletter", "", newsletterRequest{Email: "news@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/newsletter", "", newsletterRequest{Email: "NEWS@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFavoriteToggle(t *testing.T) {
	srv := newTestServer(t, 0)
	path := "/users/" + seed.PatientUserID + "/favorites/" + seed.ClinicBangkokID

	other := srv.tokenFor(t, seed.OwnerUserID, domain.RoleClinicOwner)
	rec := srv.do(t, http.MethodPost, path, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	own := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)
	rec = srv.do(t, http.MethodPost, path, own, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[domain.User](t, rec).FavoriteClinicIDs, seed.ClinicBangkokID)

	admin := srv.tokenFor(t, seed.AdminUserID, domain.RoleAdmin)
	rec = srv.do(t, http.MethodPost, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decode[domain.User](t, rec).FavoriteClinicIDs, seed.ClinicBangkokID)
}

func TestJournalSave(t *testing.T) {
	srv := newTestServer(t, 0)
	token := srv.tokenFor(t, seed.PatientUserID, domain.RolePatient)

	rec := srv.do(t, http.MethodPut, "/users/"+seed.PatientUserID+"/journal/month2", token, journalRequest{Notes: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPut, "/users/"+seed.PatientUserID+"/journal/month1", token, journalRequest{Notes: "Shedding started"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[domain.User](t, rec)
	assert.Equal(t, "Shedding started", user.Journal[domain.MilestoneMonth1].Notes)
}

func TestUploadAndServeMedia(t *testing.T) {
	srv := newTestServer(t, 0)
	token := srv.tokenFor(t, seed.AdminUserID, domain.RoleAdmin)
	payload := []byte{0x89, 'P', 'N', 'G'}

	rec := srv.do(t, http.MethodPost, "/uploads", token, uploadRequest{Data: "plain text"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/uploads", token, uploadRequest{Data: "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)})
	require.Equal(t, http.StatusCreated, rec.Code)
	url := decode[uploadResponse](t, rec).URL
	require.True(t, strings.HasPrefix(url, mediaBaseURL+"/"))

	rec = srv.do(t, http.MethodGet, "/media/"+strings.TrimPrefix(url, mediaBaseURL+"/"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, payload, rec.Body.Bytes())

	rec = srv.do(t, http.MethodGet, "/media/uploads/missing.png", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
