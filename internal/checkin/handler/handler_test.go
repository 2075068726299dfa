package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"checkin/internal/audit"
	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/flash"
	"checkin/internal/checkin/handler/mocks"
	"checkin/internal/checkin/link"
	"checkin/internal/checkin/middleware"
	"checkin/internal/checkin/models"
	"checkin/internal/checkin/render"
	"checkin/internal/checkin/session"
	dErrors "checkin/pkg/domain-errors"
	"checkin/pkg/sentinel"
	"checkin/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite

	backend    *mocks.MockBackend
	answers    *answers.InMemoryStore
	flash      *flash.InMemoryStore
	sessions   *session.Service
	links      *link.Service
	auditStore *audit.InMemoryStore
	router     chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.backend = mocks.NewMockBackend(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := render.New(logger)
	s.Require().NoError(err)

	s.answers = answers.NewInMemoryStore()
	s.flash = flash.NewInMemoryStore()
	s.sessions = session.NewService(session.NewInMemoryStore())
	s.links = link.NewService("test-link-key")
	s.auditStore = audit.NewInMemoryStore()

	h := New(
		s.backend, s.answers, s.flash, s.sessions, s.links,
		renderer, logger, nil,
		audit.NewPublisher(s.auditStore, nil),
	)
	gate := middleware.NewGate(s.backend, s.sessions, renderer, logger, nil, nil)

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestTime)
	s.router.Use(middleware.ClientMetadata)
	h.Register(s.router, gate)
}

const testSubmission = "11111111-2222-3333-4444-555555555555"

func (s *HandlerSuite) expectSubmission(status models.Status) {
	s.backend.EXPECT().
		GetSubmission(gomock.Any(), testSubmission).
		Return(models.Submission{ID: testSubmission, Status: status}, nil).
		AnyTimes()
}

// startedSession seeds a verified session with a fresh answer set and returns
// its cookie.
func (s *HandlerSuite) startedSession() *http.Cookie {
	ctx := context.Background()
	sessionID := "sess-" + s.T().Name()
	s.Require().NoError(s.sessions.MarkVerified(ctx, sessionID, testSubmission))
	set := answers.NewSet(time.Now(), answers.Device{Name: "Test Browser"})
	s.Require().NoError(s.answers.Put(ctx, sessionID, set))
	return &http.Cookie{Name: session.CookieName, Value: sessionID}
}

func (s *HandlerSuite) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) post(path string, body url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := testutil.NewFormRequest(s.T(), http.MethodPost, path, body)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) path(suffix string) string {
	return "/checkin/" + testSubmission + suffix
}

func (s *HandlerSuite) TestEntryPageCreatesAnswerSet() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	w := s.get(s.path("/"), cookie)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Check in")

	set, err := s.answers.Get(context.Background(), cookie.Value)
	s.Require().NoError(err)
	s.False(set.StartedAt.IsZero())
}

func (s *HandlerSuite) TestStartRedirectsToVerify() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	w := s.post(s.path("/start"), url.Values{}, cookie)

	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/verify"), w.Header().Get("Location"))
}

func (s *HandlerSuite) TestVerifySuccessMarksSessionAndAdvances() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		VerifyIdentity(gomock.Any(), testSubmission, models.VerifyIdentityRequest{
			FirstName:   "Sam",
			LastName:    "Porter",
			DateOfBirth: "1991-06-07",
		}).
		Return(models.VerifyIdentityResult{Verified: true}, nil)

	body := url.Values{}
	body.Set("firstName", "Sam")
	body.Set("lastName", "Porter")
	body.Set("dateOfBirth-day", "7")
	body.Set("dateOfBirth-month", "6")
	body.Set("dateOfBirth-year", "1991")

	w := s.post(s.path("/verify"), body, cookie)

	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/questions/mental-health"), w.Header().Get("Location"))

	events, err := s.auditStore.ListBySubmission(context.Background(), testSubmission)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionVerifyAttempt, events[0].Action)
	s.Equal("MATCH", events[0].Outcome)
}

func (s *HandlerSuite) TestVerifyNoMatchBouncesBack() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		VerifyIdentity(gomock.Any(), testSubmission, gomock.Any()).
		Return(models.VerifyIdentityResult{Verified: false}, nil)

	body := url.Values{}
	body.Set("firstName", "Sam")
	body.Set("lastName", "Porter")
	body.Set("dateOfBirth-day", "7")
	body.Set("dateOfBirth-month", "6")
	body.Set("dateOfBirth-year", "1991")

	w := s.post(s.path("/verify"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/verify"), w.Header().Get("Location"))

	// The follow-up GET renders the flashed issue and keeps the typed names.
	w = s.get(s.path("/verify"), cookie)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "We could not match your details")
	s.Contains(w.Body.String(), "Porter")
}

func (s *HandlerSuite) TestVerifyValidationFailureFlashesOnce() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	body := url.Values{}
	body.Set("firstName", "Sam")

	w := s.post(s.path("/verify"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/verify"), w.Header().Get("Location"))

	w = s.get(s.path("/verify"), cookie)
	s.Contains(w.Body.String(), "Enter your last name")
	s.Contains(w.Body.String(), "Enter your date of birth")

	// The flash is read-once: a reload shows a clean form.
	w = s.get(s.path("/verify"), cookie)
	s.NotContains(w.Body.String(), "Enter your last name")
}

func (s *HandlerSuite) TestQuestionSubmissionStoresAnswer() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	body := url.Values{}
	body.Set("mentalHealth", "OK")

	w := s.post(s.path("/questions/mental-health"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/questions/assistance"), w.Header().Get("Location"))

	set, err := s.answers.Get(context.Background(), cookie.Value)
	s.Require().NoError(err)
	s.Equal("OK", set.MentalHealth)
}

func (s *HandlerSuite) TestQuestionValidationFailure() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	w := s.post(s.path("/questions/mental-health"), url.Values{}, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/questions/mental-health"), w.Header().Get("Location"))

	w = s.get(s.path("/questions/mental-health"), cookie)
	s.Contains(w.Body.String(), "Select how you have been feeling")
}

func (s *HandlerSuite) TestReviewEditSubmissionReturnsToReview() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	body := url.Values{}
	body.Set("mentalHealth", "WELL")

	w := s.post(s.path("/questions/mental-health?checkAnswers=true"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/check-your-answers"), w.Header().Get("Location"))
}

func (s *HandlerSuite) TestReviewEditBackLinkPointsAtReview() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	w := s.get(s.path("/questions/mental-health?checkAnswers=true"), cookie)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), s.path("/check-your-answers"))
}

func (s *HandlerSuite) TestAssistanceDeselectClearsDetail() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	body := url.Values{}
	body.Add("aspects", answers.Unchecked)
	body.Add("aspects", answers.AspectHousing)
	body.Set("details-"+answers.AspectHousing, "eviction notice")
	w := s.post(s.path("/questions/assistance"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)

	body = url.Values{}
	body.Add("aspects", answers.Unchecked)
	body.Add("aspects", answers.AspectMoney)
	w = s.post(s.path("/questions/assistance"), body, cookie)
	s.Equal(http.StatusSeeOther, w.Code)

	set, err := s.answers.Get(context.Background(), cookie.Value)
	s.Require().NoError(err)
	s.Equal([]string{answers.AspectMoney}, set.Aspects)
	s.Empty(set.AspectDetails[answers.AspectHousing])
}

func (s *HandlerSuite) TestUnverifiedSessionSeesTimeoutInPlace() {
	s.expectSubmission(models.StatusCreated)

	// Cookie-less request: the gate mints a session with no marker.
	w := s.get(s.path("/questions/mental-health"), nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "timed out")
	s.Empty(w.Header().Get("Location"))
}

func (s *HandlerSuite) TestExpiredSubmissionRendersExpired() {
	s.expectSubmission(models.StatusExpired)
	cookie := s.startedSession()

	for _, path := range []string{"/", "/verify", "/questions/mental-health", "/check-your-answers"} {
		w := s.get(s.path(path), cookie)
		s.Equal(http.StatusGone, w.Code, path)
		s.Contains(w.Body.String(), "expired", path)
	}
}

func (s *HandlerSuite) TestSubmittedStatusOnlyAllowsConfirmation() {
	s.expectSubmission(models.StatusSubmitted)
	cookie := s.startedSession()

	w := s.get(s.path("/questions/mental-health"), cookie)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.get(s.path("/confirmation"), cookie)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Check-in complete")
}

func (s *HandlerSuite) TestVideoVerifyStoresOutcome() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		AutoVerifyVideo(gomock.Any(), testSubmission, 1).
		Return(models.AutoVerifyResult{Result: models.VideoMatch}, nil)

	w := s.get(s.path("/video/verify"), cookie)
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("OK", resp["status"])
	s.Equal(models.VideoMatch, resp["result"])

	set, err := s.answers.Get(context.Background(), cookie.Value)
	s.Require().NoError(err)
	s.Equal(models.VideoMatch, set.IdentityOutcome)
}

func (s *HandlerSuite) TestVideoVerifyBackendFailureIsInBand() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		AutoVerifyVideo(gomock.Any(), testSubmission, 1).
		Return(models.AutoVerifyResult{}, context.DeadlineExceeded)

	w := s.get(s.path("/video/verify"), cookie)
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("ERROR", resp["status"])
	s.NotEmpty(resp["message"])
}

func (s *HandlerSuite) TestReviewPageShowsRows() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	ctx := context.Background()
	set, err := s.answers.Get(ctx, cookie.Value)
	s.Require().NoError(err)
	set.SetMentalHealth("NOT_GREAT")
	set.SetAssistance([]string{answers.AspectDrugs}, map[string]string{answers.AspectDrugs: "worried about relapsing"})
	set.SetCallback("YES", "")
	s.Require().NoError(s.answers.Put(ctx, cookie.Value, set))

	w := s.get(s.path("/check-your-answers"), cookie)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Not great")
	s.Contains(w.Body.String(), "worried about relapsing")
	// No video check ran, so the identity row defaults to no match.
	s.Contains(w.Body.String(), "No match")
}

func (s *HandlerSuite) TestSubmitDestroysAnswersAndRedirects() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		SubmitAnswers(gomock.Any(), testSubmission, gomock.Any()).
		Return(models.Submission{ID: testSubmission, Status: models.StatusSubmitted}, nil)

	w := s.post(s.path("/check-your-answers"), url.Values{}, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/confirmation"), w.Header().Get("Location"))

	_, err := s.answers.Get(context.Background(), cookie.Value)
	s.Error(err)

	events, err := s.auditStore.ListBySubmission(context.Background(), testSubmission)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionSubmitted, events[0].Action)
}

func (s *HandlerSuite) TestDoubleSubmitRedirectsToConfirmation() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	// A second tab already submitted; the backend refuses the replay.
	s.backend.EXPECT().
		SubmitAnswers(gomock.Any(), testSubmission, gomock.Any()).
		Return(models.Submission{}, sentinel.ErrInvalidState)

	w := s.post(s.path("/check-your-answers"), url.Values{}, cookie)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/confirmation"), w.Header().Get("Location"))

	_, err := s.answers.Get(context.Background(), cookie.Value)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Nothing new was submitted, so no submission event is recorded.
	events, err := s.auditStore.ListBySubmission(context.Background(), testSubmission)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *HandlerSuite) TestUpstreamFailureRendersReference() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	s.backend.EXPECT().
		SubmitAnswers(gomock.Any(), testSubmission, gomock.Any()).
		Return(models.Submission{}, dErrors.New(dErrors.CodeUpstream, "backend returned status 503"))

	w := s.post(s.path("/check-your-answers"), url.Values{}, cookie)
	s.Equal(http.StatusBadGateway, w.Code)
	s.Contains(w.Body.String(), "quote reference")
}

func (s *HandlerSuite) TestKeepalive() {
	s.expectSubmission(models.StatusCreated)
	cookie := s.startedSession()

	w := s.get(s.path("/keepalive"), cookie)
	s.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("OK", resp["status"])
}

func (s *HandlerSuite) TestLinkRedemption() {
	token, err := s.links.Generate(testSubmission, time.Now().Add(time.Hour))
	s.Require().NoError(err)

	w := s.get("/link/"+token, nil)
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal(s.path("/"), w.Header().Get("Location"))
}

func (s *HandlerSuite) TestLinkRejectsGarbageToken() {
	w := s.get("/link/not-a-token", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestUnknownSubmissionIsNotFound() {
	s.backend.EXPECT().
		GetSubmission(gomock.Any(), "unknown").
		Return(models.Submission{}, sentinel.ErrNotFound)

	w := s.get("/checkin/unknown/", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
