package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

// sessionSnapshot is the persisted shape of merkato_auth. Loading and
// validation phases never persist.
type sessionSnapshot struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// AuthConfig tunes the auth session store.
type AuthConfig struct {
	TokenTTL      time.Duration
	SyncNoticeTTL time.Duration
}

// AuthStore owns the current user session and orchestrates login,
// registration and logout, including the one-time guest/account cart merge
// on every successful authentication.
//
// The state machine is Anonymous -> Pending -> Authenticated, or back to
// Anonymous with lastError set on rejection. A second login or registration
// while one is pending is rejected rather than queued.
type AuthStore struct {
	mu    sync.Mutex
	user  *domain.User
	token string
	phase domain.Phase

	lastError string

	showSyncNotice bool
	syncGen        int

	cfg       AuthConfig
	cart      *CartStore
	gateway   ports.AccountGateway
	signer    ports.TokenSigner
	snapshots ports.SnapshotStore
	notifier  ports.Notifier
	logger    *slog.Logger
	nowFn     func() time.Time
}

// AuthDependencies wires the auth store.
type AuthDependencies struct {
	Config    AuthConfig
	Cart      *CartStore
	Gateway   ports.AccountGateway
	Signer    ports.TokenSigner
	Snapshots ports.SnapshotStore
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

func NewAuthStore(deps AuthDependencies) *AuthStore {
	cfg := deps.Config
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.SyncNoticeTTL <= 0 {
		cfg.SyncNoticeTTL = 10 * time.Second
	}
	return &AuthStore{
		phase:     domain.PhaseIdle,
		cfg:       cfg,
		cart:      deps.Cart,
		gateway:   deps.Gateway,
		signer:    deps.Signer,
		snapshots: deps.Snapshots,
		notifier:  deps.Notifier,
		logger:    deps.Logger.With("module", "auth", "layer", "application"),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// SessionView is the read-only state the UI subscribes to.
type SessionView struct {
	User                 *domain.User `json:"user,omitempty"`
	IsAuthenticated      bool         `json:"is_authenticated"`
	IsLoading            bool         `json:"is_loading"`
	LastError            string       `json:"last_error,omitempty"`
	ShowSyncNotification bool         `json:"show_sync_notification"`
}

// Session returns the current session view.
func (s *AuthStore) Session() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := SessionView{
		IsAuthenticated:      s.user != nil,
		IsLoading:            s.phase.IsLoading(),
		LastError:            s.lastError,
		ShowSyncNotification: s.showSyncNotice,
	}
	if s.user != nil {
		u := *s.user
		view.User = &u
	}
	return view
}

// CurrentUser returns the authenticated user, if any.
func (s *AuthStore) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token returns the current session token.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Greeting is a derived view: time-of-day greeting for the signed-in user.
func (s *AuthStore) Greeting() string {
	user, ok := s.CurrentUser()
	if !ok || user.Name == "" {
		return "Welcome"
	}
	switch hour := s.nowFn().Hour(); {
	case hour < 12:
		return "Good morning, " + user.FirstName()
	case hour < 18:
		return "Good afternoon, " + user.FirstName()
	default:
		return "Good evening, " + user.FirstName()
	}
}

// Login authenticates against the account gateway. On success the session is
// persisted, the account-saved cart is merged into the current guest cart,
// and a time-boxed sync notice is raised when the account cart held items.
func (s *AuthStore) Login(ctx context.Context, email, password string) (SessionView, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return s.failAuth(ctx, "login", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput))
	}
	if err := s.beginAuth(); err != nil {
		return s.Session(), err
	}

	identity, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return s.failAuth(ctx, "login", err)
	}

	guest := s.cart.Snapshot()
	merged := domain.MergeCarts(guest, identity.SavedCart)
	view, err := s.completeAuth(ctx, "login", identity.User, merged, !identity.SavedCart.IsEmpty())
	if err != nil {
		return view, err
	}
	s.notifier.Toast(ports.ToastSuccess, "Welcome back, "+identity.User.FirstName()+"!")
	return view, nil
}

// Register creates an account. Field rules are checked in order and the
// first failing rule is reported. A new account has nothing saved
// server-side, so the "account cart" is the guest cart itself and the sync
// notice is raised only when that cart is non-empty.
func (s *AuthStore) Register(ctx context.Context, name, email, password, confirmPassword string) (SessionView, error) {
	switch {
	case strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" || confirmPassword == "":
		return s.failAuth(ctx, "register", fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput))
	case len(password) < 6:
		return s.failAuth(ctx, "register", fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput))
	case password != confirmPassword:
		return s.failAuth(ctx, "register", fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput))
	}
	if err := s.beginAuth(); err != nil {
		return s.Session(), err
	}

	identity, err := s.gateway.Register(ctx, ports.RegisterParams{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	})
	if err != nil {
		return s.failAuth(ctx, "register", err)
	}

	guest := s.cart.Snapshot()
	view, err := s.completeAuth(ctx, "register", identity.User, guest, !guest.IsEmpty())
	if err != nil {
		return view, err
	}
	s.notifier.Toast(ports.ToastSuccess, "Welcome, "+identity.User.FirstName()+"! Your account is ready.")
	return view, nil
}

// Logout resets the session to anonymous and erases the session snapshot.
// The cart is deliberately kept: it belongs to the device until next login.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.phase = domain.PhaseIdle
	s.lastError = ""
	s.showSyncNotice = false
	s.syncGen++
	if err := s.snapshots.Delete(ctx, ports.SnapshotKeySession); err != nil {
		s.logger.WarnContext(ctx, "session snapshot delete failed", "operation", "logout", "outcome", "failure", "error", err.Error())
	}
	s.mu.Unlock()

	s.notifier.Toast(ports.ToastInfo, "You have been signed out")
}

// ProfilePatch is a partial profile update.
type ProfilePatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// UpdateProfile shallow-merges into the current user record and re-persists
// the session snapshot. Calling it while anonymous is a no-op, not an error.
func (s *AuthStore) UpdateProfile(ctx context.Context, patch ProfilePatch) SessionView {
	s.mu.Lock()
	if s.user != nil {
		updated := *s.user
		if patch.Name != nil {
			updated.Name = *patch.Name
		}
		if patch.Email != nil {
			updated.Email = *patch.Email
		}
		if patch.Phone != nil {
			updated.Phone = *patch.Phone
		}
		if patch.Avatar != nil {
			updated.Avatar = *patch.Avatar
		}
		s.user = &updated
		s.persistSessionLocked(ctx)
	}
	s.mu.Unlock()
	return s.Session()
}

// DismissSyncNotification clears the cart-sync notice before its timer fires.
func (s *AuthStore) DismissSyncNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSyncNotice = false
	s.syncGen++
}

// RestoreSession rehydrates merkato_auth at boot. The snapshot is untrusted:
// an unreadable payload or invalid token falls back to anonymous. When a
// session is restored, the account's saved server cart is fetched and run
// through the same merge engine as the login path.
func (s *AuthStore) RestoreSession(ctx context.Context) {
	raw, ok, err := s.snapshots.Load(ctx, ports.SnapshotKeySession)
	if err != nil || !ok {
		return
	}
	var saved sessionSnapshot
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.WarnContext(ctx, "session snapshot unreadable, staying anonymous", "operation", "restore", "outcome", "failure", "error", err.Error())
		return
	}
	if saved.Token == "" || saved.User.ID == "" {
		return
	}
	if _, err := s.signer.ParseAndValidate(saved.Token); err != nil {
		s.logger.InfoContext(ctx, "stored session token no longer valid", "operation", "restore", "outcome", "failure")
		_ = s.snapshots.Delete(ctx, ports.SnapshotKeySession)
		return
	}

	s.mu.Lock()
	user := saved.User
	s.user = &user
	s.token = saved.Token
	s.phase = domain.PhaseSucceeded
	s.mu.Unlock()

	savedCart, err := s.gateway.FetchSavedCart(ctx, saved.User.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "saved cart fetch failed", "operation", "restore", "outcome", "failure", "error", err.Error())
		return
	}
	if savedCart.IsEmpty() {
		return
	}
	guest := s.cart.Snapshot()
	s.cart.SetCart(ctx, domain.MergeCarts(guest, savedCart))
	s.raiseSyncNotice()
}

func (s *AuthStore) beginAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.IsLoading() {
		return domain.ErrOperationInFlight
	}
	s.phase = domain.PhasePending
	s.lastError = ""
	return nil
}

func (s *AuthStore) completeAuth(ctx context.Context, operation string, user domain.User, mergedCart domain.Cart, syncNeeded bool) (SessionView, error) {
	token, err := s.signer.Sign(ports.AuthClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  s.nowFn(),
		ExpiresAt: s.nowFn().Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return s.failAuth(ctx, operation, fmt.Errorf("sign session token: %w", err))
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.phase = domain.PhaseSucceeded
	s.lastError = ""
	s.persistSessionLocked(ctx)
	s.mu.Unlock()

	s.cart.SetCart(ctx, mergedCart)
	if syncNeeded {
		s.raiseSyncNotice()
	}

	s.logger.InfoContext(ctx, "authentication completed", "operation", operation, "outcome", "success", "user_id", user.ID)
	return s.Session(), nil
}

func (s *AuthStore) failAuth(ctx context.Context, operation string, err error) (SessionView, error) {
	s.mu.Lock()
	s.phase = domain.PhaseFailed
	s.lastError = userFacingAuthError(err)
	s.mu.Unlock()

	s.notifier.Toast(ports.ToastError, s.Session().LastError)
	s.logger.WarnContext(ctx, "authentication failed", "operation", operation, "outcome", "failure", "error", err.Error())
	return s.Session(), err
}

// raiseSyncNotice sets the time-boxed "your cart changed" flag. The
// generation counter keeps a stale timer from clearing a newer notice.
func (s *AuthStore) raiseSyncNotice() {
	s.mu.Lock()
	s.showSyncNotice = true
	s.syncGen++
	gen := s.syncGen
	s.mu.Unlock()

	time.AfterFunc(s.cfg.SyncNoticeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.syncGen == gen {
			s.showSyncNotice = false
		}
	})
}

func (s *AuthStore) persistSessionLocked(ctx context.Context) {
	raw, err := json.Marshal(sessionSnapshot{User: *s.user, Token: s.token})
	if err != nil {
		s.logger.ErrorContext(ctx, "session snapshot marshal failed", "operation", "persist", "outcome", "failure", "error", err.Error())
		return
	}
	if err := s.snapshots.Save(ctx, ports.SnapshotKeySession, raw); err != nil {
		s.logger.WarnContext(ctx, "session snapshot save failed", "operation", "persist", "outcome", "failure", "error", err.Error())
	}
}

// userFacingAuthError flattens any auth failure into the single lastError
// string the UI shows above the form.
func userFacingAuthError(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
