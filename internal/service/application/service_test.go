package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	internaljwt "kartel-backend/internal/jwt"
	"kartel-backend/internal/model"
	"kartel-backend/internal/notify"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"
)

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
	err  error
}

func (f *fakeEmailSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeEmailSender) messages() []notify.EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.EmailMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

var tokenPattern = regexp.MustCompile(`token=([0-9a-f]{64})`)

func emailedToken(t *testing.T, msg notify.EmailMessage) string {
	t.Helper()
	match := tokenPattern.FindStringSubmatch(msg.HTML)
	if match == nil {
		t.Fatalf("no token link in email: %s", msg.HTML)
	}
	return match[1]
}

func newTestService(t *testing.T) (*Service, *fakeEmailSender) {
	t.Helper()
	email := &fakeEmailSender{}
	svc := New(store.NewMemoryStore(), email, Config{
		WebURL:     "https://kartel.example",
		AdminEmail: "board@kartel.example",
		TokenIssuer: func(member internaljwt.Member, role internaljwt.Role, ttl int64) (internaljwt.TokenResponse, error) {
			return internaljwt.TokenResponse{AccessToken: "access-" + member.Id}, nil
		},
	}, nil)
	return svc, email
}

func submitTestApplication(t *testing.T, svc *Service) model.ApplicationItem {
	t.Helper()
	app, err := svc.Submit(context.Background(), SubmitParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+31612345678",
		Company:   "Analytical Engines BV",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return app
}

func faultCode(err error) fault.ErrorCode {
	var svcErr *fault.Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

func TestSubmitValidationNamesFirstMissingField(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		params SubmitParams
		want   string
	}{
		{SubmitParams{Email: "a@b.c", Phone: "1"}, "firstName"},
		{SubmitParams{FirstName: "Ada", Phone: "1"}, "email"},
		{SubmitParams{FirstName: "Ada", Email: "a@b.c"}, "phone"},
	}
	for _, tc := range cases {
		_, err := svc.Submit(ctx, tc.params)
		if faultCode(err) != fault.ErrorCodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("expected error naming %q, got %v", tc.want, err)
		}
	}

	// Rejected submissions leave nothing behind: the list stays empty and a
	// rebuild over the raw records finds none.
	apps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("expected empty list after failed submits, got %d entries", len(apps))
	}
	summary, err := svc.Recover(ctx)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if summary.Recovered != 0 {
		t.Fatalf("expected no persisted records, rebuild found %d", summary.Recovered)
	}
}

func TestSubmitSplitsFullName(t *testing.T) {
	svc, _ := newTestService(t)

	app, err := svc.Submit(context.Background(), SubmitParams{
		Name:  "Grace Brewster Hopper",
		Email: "grace@example.com",
		Phone: "+31687654321",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if app.FirstName != "Grace" || app.LastName != "Brewster Hopper" {
		t.Fatalf("unexpected name split: %q %q", app.FirstName, app.LastName)
	}
}

func TestSubmitCreatesPendingWithDistinctTokens(t *testing.T) {
	svc, email := newTestService(t)
	app := submitTestApplication(t, svc)

	if app.Status != model.ApplicationStatusPending {
		t.Fatalf("expected pending status, got %s", app.Status)
	}
	if app.ApproveToken == "" || app.RejectToken == "" || app.ApproveToken == app.RejectToken {
		t.Fatal("approve and reject tokens must be distinct and non-empty")
	}

	msgs := email.messages()
	if len(msgs) != 1 || msgs[0].To != "board@kartel.example" {
		t.Fatalf("expected one admin notification, got %+v", msgs)
	}
}

func TestSubmitSurvivesEmailFailure(t *testing.T) {
	svc, email := newTestService(t)
	email.err = errors.New("ses down")

	app := submitTestApplication(t, svc)

	apps, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != app.ID {
		t.Fatalf("application should be stored despite email failure, got %+v", apps)
	}
}

func TestReviewApprovesAndNotifies(t *testing.T) {
	svc, email := newTestService(t)
	app := submitTestApplication(t, svc)

	reviewed, err := svc.Review(context.Background(), ReviewParams{
		ApplicationID: app.ID,
		Decision:      model.ApplicationStatusApproved,
		ReviewedBy:    "board@kartel.example",
		Notes:         "good fit",
		Notify:        true,
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != model.ApplicationStatusApproved || reviewed.ReviewedAt == "" {
		t.Fatalf("unexpected reviewed record: %+v", reviewed)
	}
	if reviewed.Notes != "good fit" {
		t.Fatalf("notes not stored: %+v", reviewed)
	}

	msgs := email.messages()
	if len(msgs) != 2 || msgs[1].To != app.Email {
		t.Fatalf("expected applicant notification, got %+v", msgs)
	}
}

func TestReviewRejectsInvalidDecision(t *testing.T) {
	svc, _ := newTestService(t)
	app := submitTestApplication(t, svc)

	_, err := svc.Review(context.Background(), ReviewParams{
		ApplicationID: app.ID,
		Decision:      model.ApplicationStatusPending,
	})
	if faultCode(err) != fault.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReviewUnknownApplication(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Review(context.Background(), ReviewParams{
		ApplicationID: "app_missing",
		Decision:      model.ApplicationStatusApproved,
	})
	if faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReviewCannotFlipDecision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	app := submitTestApplication(t, svc)

	if _, err := svc.Review(ctx, ReviewParams{ApplicationID: app.ID, Decision: model.ApplicationStatusApproved}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	_, err := svc.Review(ctx, ReviewParams{ApplicationID: app.ID, Decision: model.ApplicationStatusRejected})
	if faultCode(err) != fault.ErrorCodeConflict {
		t.Fatalf("expected conflict on second review, got %v", err)
	}

	apps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 1 || apps[0].Status != model.ApplicationStatusApproved {
		t.Fatalf("decision should stand, got %+v", apps)
	}
}

func TestReviewByActionTokenCannotFlipDecision(t *testing.T) {
	svc, _ := newTestService(t)
	app := submitTestApplication(t, svc)

	reviewed, err := svc.ReviewByActionToken(context.Background(), app.ApproveToken)
	if err != nil {
		t.Fatalf("action review failed: %v", err)
	}
	if reviewed.Status != model.ApplicationStatusApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}

	_, err = svc.ReviewByActionToken(context.Background(), app.RejectToken)
	if faultCode(err) != fault.ErrorCodeConflict {
		t.Fatalf("expected conflict on second action, got %v", err)
	}
}

func TestReviewByActionTokenUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	submitTestApplication(t, svc)

	_, err := svc.ReviewByActionToken(context.Background(), strings.Repeat("ab", 32))
	if faultCode(err) != fault.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminSetupFlow(t *testing.T) {
	svc, email := newTestService(t)
	ctx := context.Background()
	app := submitTestApplication(t, svc)

	if err := svc.IssueAdminSetupLink(ctx, app.ID); faultCode(err) != fault.ErrorCodeConflict {
		t.Fatalf("setup link for pending application should conflict, got %v", err)
	}

	if _, err := svc.Review(ctx, ReviewParams{ApplicationID: app.ID, Decision: model.ApplicationStatusApproved}); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := svc.IssueAdminSetupLink(ctx, app.ID); err != nil {
		t.Fatalf("setup link failed: %v", err)
	}

	msgs := email.messages()
	setupToken := emailedToken(t, msgs[len(msgs)-1])

	if err := svc.GrantAdminCredentials(ctx, setupToken, "short"); faultCode(err) != fault.ErrorCodeValidation {
		t.Fatal("short password should be rejected")
	}
	if err := svc.GrantAdminCredentials(ctx, setupToken, "a strong password"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	result, err := svc.AdminLogin(ctx, app.Email, "a strong password")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if !result.Member.IsAdmin {
		t.Fatal("member should carry the admin flag")
	}
	if result.Tokens.AccessToken != "access-"+app.ID {
		t.Fatalf("unexpected session tokens: %+v", result.Tokens)
	}

	// The setup token is single-use.
	err = svc.GrantAdminCredentials(ctx, setupToken, "another password")
	if faultCode(err) != fault.ErrorCodeAlreadyUsed {
		t.Fatalf("expected already used, got %v", err)
	}
}

func TestRequestLoginLinkDoesNotRevealMembership(t *testing.T) {
	svc, email := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLoginLink(ctx, "stranger@example.com"); err != nil {
		t.Fatalf("unknown email should be acknowledged, got %v", err)
	}
	if len(email.messages()) != 0 {
		t.Fatal("no email should go to unknown addresses")
	}

	app := submitTestApplication(t, svc)
	if err := svc.RequestLoginLink(ctx, app.Email); err != nil {
		t.Fatalf("pending member should be acknowledged, got %v", err)
	}
	// Only the submission notification went out, no login link.
	if len(email.messages()) != 1 {
		t.Fatalf("expected 1 email, got %d", len(email.messages()))
	}
}

func TestMagicLinkLoginFlow(t *testing.T) {
	svc, email := newTestService(t)
	ctx := context.Background()
	app := submitTestApplication(t, svc)

	if _, err := svc.Review(ctx, ReviewParams{ApplicationID: app.ID, Decision: model.ApplicationStatusApproved}); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := svc.RequestLoginLink(ctx, strings.ToUpper(app.Email)); err != nil {
		t.Fatalf("login link failed: %v", err)
	}

	msgs := email.messages()
	loginToken := emailedToken(t, msgs[len(msgs)-1])

	result, err := svc.LoginWithToken(ctx, loginToken)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Member.ID != app.ID {
		t.Fatalf("unexpected member: %+v", result.Member)
	}

	if _, err := svc.LoginWithToken(ctx, loginToken); faultCode(err) != fault.ErrorCodeAlreadyUsed {
		t.Fatalf("login token must be single-use, got %v", err)
	}
}

func TestPasswordLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	app := submitTestApplication(t, svc)

	if _, err := svc.Review(ctx, ReviewParams{ApplicationID: app.ID, Decision: model.ApplicationStatusApproved}); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := svc.SetMemberPassword(ctx, app.ID, "member password"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}

	if _, err := svc.LoginWithPassword(ctx, app.Email, "member password"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.LoginWithPassword(ctx, app.Email, "wrong"); faultCode(err) != fault.ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.LoginWithPassword(ctx, "nobody@example.com", "member password"); faultCode(err) != fault.ErrorCodeUnauthorized {
		t.Fatalf("unknown email should read as invalid credentials, got %v", err)
	}
}

func TestPromoteToSuperAdminIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	app := submitTestApplication(t, svc)

	promoted, err := svc.PromoteToSuperAdmin(ctx, "ADA@Example.COM")
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if promoted.ID != app.ID || !promoted.IsSuperAdmin || !promoted.IsAdmin {
		t.Fatalf("unexpected promotion result: %+v", promoted)
	}
	if promoted.Status != model.ApplicationStatusPending {
		t.Fatal("promotion must not touch the lifecycle status")
	}
}

func TestRecoverRebuildsApplicationsList(t *testing.T) {
	email := &fakeEmailSender{}
	mem := store.NewMemoryStore()
	svc := New(mem, email, Config{WebURL: "https://kartel.example"}, nil)
	ctx := context.Background()

	app, err := svc.Submit(ctx, SubmitParams{FirstName: "Ada", Email: "ada@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := mem.Delete(ctx, model.ApplicationsCollection, store.ListKey); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	summary, err := svc.Recover(ctx)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if summary.Recovered != 1 {
		t.Fatalf("expected 1 recovered, got %+v", summary)
	}
	if summary.StatusCounts[string(model.ApplicationStatusPending)] != 1 {
		t.Fatalf("expected pending count, got %+v", summary.StatusCounts)
	}

	apps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != app.ID {
		t.Fatalf("list not restored: %+v", apps)
	}
}
