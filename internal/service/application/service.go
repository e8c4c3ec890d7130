package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"kartel-backend/internal/auth"
	internaljwt "kartel-backend/internal/jwt"
	"kartel-backend/internal/model"
	"kartel-backend/internal/notify"
	"kartel-backend/internal/service/fault"
	"kartel-backend/internal/store"
	"kartel-backend/internal/token"

	"go.uber.org/zap"
)

const minPasswordLength = 8

// Service drives the application lifecycle: public submission, admin review,
// credential grants and magic-link login. State transitions are
// pending -> approved | rejected; admin flags are orthogonal attributes set
// on approved records.
type Service struct {
	store       store.Store
	list        *store.List[model.ApplicationItem]
	adminTokens *token.Service
	loginTokens *token.Service
	email       notify.EmailSender
	cfg         Config
	now         func() time.Time
	logger      *zap.Logger
}

func New(s store.Store, email notify.EmailSender, cfg Config, logger *zap.Logger) *Service {
	return NewWithClock(s, email, cfg, logger, time.Now)
}

func NewWithClock(s store.Store, email notify.EmailSender, cfg Config, logger *zap.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	if cfg.LoginTokenTTL == 0 {
		cfg.LoginTokenTTL = 24 * time.Hour
	}
	if cfg.SetupTokenTTL == 0 {
		cfg.SetupTokenTTL = 72 * time.Hour
	}
	if cfg.TokenIssuer == nil {
		cfg.TokenIssuer = internaljwt.CreateTokenWithRefresh
	}

	return &Service{
		store:       s,
		list:        store.NewList(s, applicationListConfig(), logger),
		adminTokens: token.NewWithClock(s, model.AdminTokensCollection, logger, now),
		loginTokens: token.NewWithClock(s, model.LoginTokensCollection, logger, now),
		email:       email,
		cfg:         cfg,
		now:         now,
		logger:      logger,
	}
}

func applicationListConfig() store.ListConfig[model.ApplicationItem] {
	return store.ListConfig[model.ApplicationItem]{
		Collection: model.ApplicationsCollection,
		Key: func(a model.ApplicationItem) string {
			return a.ID
		},
		SubmittedAt: func(a model.ApplicationItem) time.Time {
			return store.RecordTime(a.SubmittedAt)
		},
		Valid: func(a model.ApplicationItem) bool {
			return a.Email != ""
		},
		Status: func(a model.ApplicationItem) string {
			return string(a.Status)
		},
	}
}

// Submit creates a pending application with two distinct action tokens and
// notifies the admin mailbox. The notification is best-effort.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (model.ApplicationItem, error) {
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)
	if firstName == "" {
		firstName, lastName = splitName(params.Name)
	}
	email := normalizeEmail(params.Email)
	phone := strings.TrimSpace(params.Phone)

	switch {
	case firstName == "":
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: firstName", nil)
	case email == "":
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: email", nil)
	case phone == "":
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: phone", nil)
	}

	approveToken, err := actionToken()
	if err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to prepare application", err)
	}
	rejectToken, err := actionToken()
	if err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to prepare application", err)
	}

	app := model.ApplicationItem{
		ID:           model.NewRecordID("app"),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Company:      strings.TrimSpace(params.Company),
		Phone:        phone,
		Message:      strings.TrimSpace(params.Message),
		Status:       model.ApplicationStatusPending,
		SubmittedAt:  s.now().UTC().Format(time.RFC3339),
		ApproveToken: approveToken,
		RejectToken:  rejectToken,
	}

	if err := s.list.AppendOrUpdate(ctx, app); err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to save application", err)
	}

	if s.email != nil && s.cfg.AdminEmail != "" {
		msg := notify.NewApplicationEmail(
			s.cfg.AdminEmail,
			app.FirstName+" "+app.LastName,
			app.Email,
			app.Company,
			s.actionURL(app.ApproveToken),
			s.actionURL(app.RejectToken),
		)
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Warn("admin notification failed",
				zap.String("applicationId", app.ID),
				zap.Error(err))
		}
	}

	return app, nil
}

// List returns the denormalized applications list; absent or corrupt list
// blobs read as empty (recovery is explicit via Recover).
func (s *Service) List(ctx context.Context) ([]model.ApplicationItem, error) {
	apps, err := s.list.Load(ctx)
	if err != nil {
		return nil, fault.New(fault.ErrorCodeInternal, "failed to load applications", err)
	}
	return apps, nil
}

// Review moves a pending application to approved or rejected and optionally
// emails the applicant. A decided application cannot be re-reviewed; the
// decision email is best-effort.
func (s *Service) Review(ctx context.Context, params ReviewParams) (model.ApplicationItem, error) {
	if params.Decision != model.ApplicationStatusApproved && params.Decision != model.ApplicationStatusRejected {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "decision must be approved or rejected", nil)
	}

	app, err := s.getByID(ctx, params.ApplicationID)
	if err != nil {
		return model.ApplicationItem{}, err
	}
	if app.Status != model.ApplicationStatusPending {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeConflict, "application already reviewed", nil)
	}

	app.Status = params.Decision
	app.ReviewedAt = s.now().UTC().Format(time.RFC3339)
	app.ReviewedBy = params.ReviewedBy
	if params.Notes != "" {
		app.Notes = params.Notes
	}

	if err := s.list.AppendOrUpdate(ctx, app); err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to save review", err)
	}

	if params.Notify && s.email != nil {
		var msg notify.EmailMessage
		if params.Decision == model.ApplicationStatusApproved {
			msg = notify.ApplicationApprovedEmail(app.Email, app.FirstName)
		} else {
			msg = notify.ApplicationRejectedEmail(app.Email, app.FirstName)
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Warn("decision notification failed",
				zap.String("applicationId", app.ID),
				zap.String("decision", string(params.Decision)),
				zap.Error(err))
		}
	}

	return app, nil
}

// ReviewByActionToken resolves an emailed approve/reject link to its
// application and decision, then reviews it. A non-pending application
// yields a conflict so a link cannot flip an earlier decision.
func (s *Service) ReviewByActionToken(ctx context.Context, actionToken string) (model.ApplicationItem, error) {
	if actionToken == "" {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing action token", nil)
	}

	apps, err := s.list.Load(ctx)
	if err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to load applications", err)
	}

	for _, app := range apps {
		var decision model.ApplicationStatus
		switch actionToken {
		case app.ApproveToken:
			decision = model.ApplicationStatusApproved
		case app.RejectToken:
			decision = model.ApplicationStatusRejected
		default:
			continue
		}

		if app.Status != model.ApplicationStatusPending {
			return model.ApplicationItem{}, fault.New(fault.ErrorCodeConflict, "application already reviewed", nil)
		}

		return s.Review(ctx, ReviewParams{
			ApplicationID: app.ID,
			Decision:      decision,
			ReviewedBy:    "email-action",
			Notify:        true,
		})
	}

	return model.ApplicationItem{}, fault.New(fault.ErrorCodeNotFound, "action token not recognised", nil)
}

// IssueAdminSetupLink issues a single-use setup token for an approved
// application and emails the setup URL. Unlike decision notifications the
// email is the point of the operation, so its failure is returned.
func (s *Service) IssueAdminSetupLink(ctx context.Context, applicationID string) error {
	app, err := s.getByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.Status != model.ApplicationStatusApproved {
		return fault.New(fault.ErrorCodeConflict, "application is not approved", nil)
	}

	setupToken, err := s.adminTokens.Issue(ctx, app.ID, app.Email, s.cfg.SetupTokenTTL)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to issue setup token", err)
	}

	if s.email == nil {
		return fault.New(fault.ErrorCodeInternal, "email sender not configured", nil)
	}
	msg := notify.AdminSetupEmail(app.Email, app.FirstName, fmt.Sprintf("%s/admin/setup?token=%s", s.cfg.WebURL, setupToken))
	if err := s.email.Send(ctx, msg); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to send setup email", err)
	}
	return nil
}

// GrantAdminCredentials consumes a setup token and installs the admin
// password hash on the referenced application.
func (s *Service) GrantAdminCredentials(ctx context.Context, setupToken, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fault.New(fault.ErrorCodeValidation, "password must be at least 8 characters", nil)
	}

	item, err := s.adminTokens.Validate(ctx, setupToken)
	if err != nil {
		return tokenFault(err, "setup token")
	}
	if err := s.adminTokens.Consume(ctx, setupToken); err != nil {
		return tokenFault(err, "setup token")
	}

	app, err := s.getByID(ctx, item.SubjectID)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to hash password", err)
	}

	app.IsAdmin = true
	app.AdminPasswordHash = hashed.Hash
	app.AdminPasswordSalt = hashed.Salt

	if err := s.list.AppendOrUpdate(ctx, app); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to save credentials", err)
	}
	return nil
}

// SetMemberPassword installs the member password hash; used by the member
// settings flow after a magic-link login.
func (s *Service) SetMemberPassword(ctx context.Context, memberID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fault.New(fault.ErrorCodeValidation, "password must be at least 8 characters", nil)
	}

	app, err := s.getByID(ctx, memberID)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to hash password", err)
	}

	app.MemberPasswordHash = hashed.Hash
	app.MemberPasswordSalt = hashed.Salt

	if err := s.list.AppendOrUpdate(ctx, app); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to save credentials", err)
	}
	return nil
}

// PromoteToSuperAdmin locates the member by email, case-insensitively, and
// sets both admin flags without touching the lifecycle status.
func (s *Service) PromoteToSuperAdmin(ctx context.Context, email string) (model.ApplicationItem, error) {
	target := normalizeEmail(email)
	if target == "" {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing required field: email", nil)
	}

	app, err := s.findByEmail(ctx, target)
	if err != nil {
		return model.ApplicationItem{}, err
	}

	app.IsSuperAdmin = true
	app.IsAdmin = true

	if err := s.list.AppendOrUpdate(ctx, app); err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to save promotion", err)
	}
	return app, nil
}

// Recover rebuilds the applications list from the individually-keyed
// records. Explicit administrative action only.
func (s *Service) Recover(ctx context.Context) (store.RebuildSummary, error) {
	summary, err := s.list.Rebuild(ctx)
	if err != nil {
		return store.RebuildSummary{}, fault.New(fault.ErrorCodeInternal, "failed to rebuild applications list", err)
	}
	return summary, nil
}

// RequestLoginLink emails a magic link to an approved member. Unknown or
// unapproved emails are acknowledged without a send so the endpoint does not
// reveal who is a member.
func (s *Service) RequestLoginLink(ctx context.Context, email string) error {
	target := normalizeEmail(email)
	if target == "" {
		return fault.New(fault.ErrorCodeValidation, "missing required field: email", nil)
	}

	app, err := s.findByEmail(ctx, target)
	if err != nil {
		var svcErr *fault.Error
		if errors.As(err, &svcErr) && svcErr.Code == fault.ErrorCodeNotFound {
			s.logger.Info("login link requested for unknown email")
			return nil
		}
		return err
	}
	if app.Status != model.ApplicationStatusApproved {
		s.logger.Info("login link requested for unapproved application",
			zap.String("applicationId", app.ID))
		return nil
	}

	loginToken, err := s.loginTokens.Issue(ctx, app.ID, app.Email, s.cfg.LoginTokenTTL)
	if err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to issue login token", err)
	}

	if s.email == nil {
		return fault.New(fault.ErrorCodeInternal, "email sender not configured", nil)
	}
	msg := notify.LoginLinkEmail(app.Email, fmt.Sprintf("%s/login?token=%s", s.cfg.WebURL, loginToken))
	if err := s.email.Send(ctx, msg); err != nil {
		return fault.New(fault.ErrorCodeInternal, "failed to send login email", err)
	}
	return nil
}

// LoginWithToken consumes a magic-link token and returns session tokens.
func (s *Service) LoginWithToken(ctx context.Context, loginToken string) (AuthResult, error) {
	item, err := s.loginTokens.Validate(ctx, loginToken)
	if err != nil {
		return AuthResult{}, tokenFault(err, "login token")
	}
	if err := s.loginTokens.Consume(ctx, loginToken); err != nil {
		return AuthResult{}, tokenFault(err, "login token")
	}

	app, err := s.getByID(ctx, item.SubjectID)
	if err != nil {
		return AuthResult{}, err
	}
	if app.Status != model.ApplicationStatusApproved {
		return AuthResult{}, fault.New(fault.ErrorCodeForbidden, "membership not active", nil)
	}

	return s.session(app)
}

// LoginWithPassword authenticates with the member password.
func (s *Service) LoginWithPassword(ctx context.Context, email, password string) (AuthResult, error) {
	app, err := s.passwordLogin(ctx, email, password, false)
	if err != nil {
		return AuthResult{}, err
	}
	return s.session(app)
}

// AdminLogin authenticates with the admin password set up via a setup token.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (AuthResult, error) {
	app, err := s.passwordLogin(ctx, email, password, true)
	if err != nil {
		return AuthResult{}, err
	}
	return s.session(app)
}

func (s *Service) passwordLogin(ctx context.Context, email, password string, admin bool) (model.ApplicationItem, error) {
	target := normalizeEmail(email)
	if target == "" || password == "" {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing required fields", nil)
	}

	app, err := s.findByEmail(ctx, target)
	if err != nil {
		var svcErr *fault.Error
		if errors.As(err, &svcErr) && svcErr.Code == fault.ErrorCodeNotFound {
			return model.ApplicationItem{}, fault.New(fault.ErrorCodeUnauthorized, "invalid credentials", nil)
		}
		return model.ApplicationItem{}, err
	}
	if app.Status != model.ApplicationStatusApproved {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	salt, hash := app.MemberPasswordSalt, app.MemberPasswordHash
	if admin {
		if !app.IsAdmin {
			return model.ApplicationItem{}, fault.New(fault.ErrorCodeForbidden, "not an admin", nil)
		}
		salt, hash = app.AdminPasswordSalt, app.AdminPasswordHash
	}

	if !auth.VerifyPassword(password, salt, hash) {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeUnauthorized, "invalid credentials", nil)
	}
	return app, nil
}

func (s *Service) session(app model.ApplicationItem) (AuthResult, error) {
	role := internaljwt.RoleMember
	if app.IsSuperAdmin {
		role = internaljwt.RoleSuperAdmin
	} else if app.IsAdmin {
		role = internaljwt.RoleAdmin
	}

	tokens, err := s.cfg.TokenIssuer(internaljwt.Member{
		Id:    app.ID,
		Email: app.Email,
	}, role, 0)
	if err != nil {
		return AuthResult{}, fault.New(fault.ErrorCodeInternal, "failed to issue session tokens", err)
	}

	return AuthResult{Member: app, Tokens: tokens}, nil
}

func (s *Service) getByID(ctx context.Context, id string) (model.ApplicationItem, error) {
	if id == "" {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeValidation, "missing application id", nil)
	}

	var app model.ApplicationItem
	found, err := store.GetJSON(ctx, s.store, model.ApplicationsCollection, id, &app)
	if err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to load application", err)
	}
	if !found {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeNotFound, "application not found", nil)
	}
	return app, nil
}

// findByEmail scans the list blob; individual records are keyed by id, so
// email lookups go through the denormalized copy.
func (s *Service) findByEmail(ctx context.Context, normalizedEmail string) (model.ApplicationItem, error) {
	apps, err := s.list.Load(ctx)
	if err != nil {
		return model.ApplicationItem{}, fault.New(fault.ErrorCodeInternal, "failed to load applications", err)
	}

	for _, app := range apps {
		if normalizeEmail(app.Email) == normalizedEmail {
			return app, nil
		}
	}
	return model.ApplicationItem{}, fault.New(fault.ErrorCodeNotFound, "application not found", nil)
}

func (s *Service) actionURL(actionToken string) string {
	return fmt.Sprintf("%s/api/v1/applications/action?token=%s", s.cfg.WebURL, actionToken)
}

func tokenFault(err error, label string) error {
	switch {
	case errors.Is(err, token.ErrNotFound):
		return fault.New(fault.ErrorCodeNotFound, label+" not found", err)
	case errors.Is(err, token.ErrExpired):
		return fault.New(fault.ErrorCodeExpired, label+" expired", err)
	case errors.Is(err, token.ErrAlreadyUsed):
		return fault.New(fault.ErrorCodeAlreadyUsed, label+" already used", err)
	default:
		return fault.New(fault.ErrorCodeInternal, "failed to check "+label, err)
	}
}

func actionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
