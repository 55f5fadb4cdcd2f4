package controllers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/spawlov/auth-service/internal/dtos"
	"github.com/spawlov/auth-service/internal/middleware"
	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/services"
	"github.com/spawlov/auth-service/internal/utils"
)

// ------------------------------------------------------------
// In-memory stores backing the full service stack
// ------------------------------------------------------------

type memTokenStore struct {
	mu      sync.Mutex
	records map[string]*models.TokenRecord
	nextID  int64
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{records: make(map[string]*models.TokenRecord)}
}

func (s *memTokenStore) Create(ctx context.Context, record *models.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	stored := *record
	s.records[record.JTI] = &stored
	return nil
}

func (s *memTokenStore) GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[jti]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *memTokenStore) RevokeByJTI(ctx context.Context, jti string, reason string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[jti]
	if !ok || rec.RevokedAt != nil {
		return 0, nil
	}
	now := time.Now()
	rec.Reason = &reason
	rec.RevokedAt = &now
	return 1, nil
}

func (s *memTokenStore) RevokeAllByUserID(ctx context.Context, userID int64, reason string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jtis []string
	now := time.Now()
	for _, rec := range s.records {
		if rec.UserID == userID && rec.RevokedAt == nil {
			rec.Reason = &reason
			rec.RevokedAt = &now
			jtis = append(jtis, rec.JTI)
		}
	}
	return jtis, nil
}

func (s *memTokenStore) CleanupExpired(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, rec := range s.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.records, jti)
		}
	}
	return nil
}

type memUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*models.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Nickname == user.Nickname {
			return utils.ErrNicknameTaken
		}
		if u.Email == user.Email {
			return utils.ErrEmailTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *memUserStore) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Nickname == nickname {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetAll(ctx context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memRateLimitStore struct {
	mu     sync.Mutex
	counts map[string]int
	expiry map[string]time.Time
}

func newMemRateLimitStore() *memRateLimitStore {
	return &memRateLimitStore{
		counts: make(map[string]int),
		expiry: make(map[string]time.Time),
	}
}

func (s *memRateLimitStore) IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if exp, ok := s.expiry[key]; !ok || exp.Before(now) {
		s.counts[key] = 0
		s.expiry[key] = now.Add(window)
	}
	s.counts[key]++
	return s.counts[key] <= limit, nil
}

func (s *memRateLimitStore) CleanupExpired(ctx context.Context) error {
	return nil
}

// ------------------------------------------------------------
// Test environment: the real services behind the real routes
// ------------------------------------------------------------

type testEnv struct {
	router *mux.Router
	users  *memUserStore
	tokens *memTokenStore
}

// newTestEnv wires the full stack the way the entrypoint does, swapping the
// Postgres repositories for in-memory ones.
func newTestEnv(t *testing.T, loginRateLimit int) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	userStore := newMemUserStore()
	tokenStore := newMemTokenStore()

	hasher := utils.NewArgon2Hasher()
	cache := services.NewRevocationCache()
	codec := services.NewRSATokenCodec(key, &key.PublicKey)
	issuer := services.NewTokenIssuer(codec, tokenStore, 15*time.Minute, 30*24*time.Hour)
	guard := services.NewSessionGuard(codec, tokenStore, cache)
	revoker := services.NewRevocationService(tokenStore, cache)
	credentials := services.NewCredentialService(userStore, hasher)

	userService := services.NewUserService(userStore, hasher)
	authService := services.NewAuthService(credentials, issuer, guard, revoker, userService)
	rateLimiter := services.NewRateLimiterService(newMemRateLimitStore(), loginRateLimit, time.Minute)

	authController := NewAuthController(authService)
	userController := NewUserController(userService)

	router := mux.NewRouter()

	authRouter := router.PathPrefix("/auth").Subrouter()
	loginRouter := authRouter.Path("/login").Subrouter()
	loginRouter.Use(middleware.LoginRateLimit(rateLimiter))
	loginRouter.HandleFunc("", authController.Login).Methods("POST")

	authRouter.HandleFunc("/refresh", authController.Refresh).Methods("POST")
	authRouter.HandleFunc("/logout", authController.Logout).Methods("POST")
	authRouter.HandleFunc("/me", authController.Me).Methods("GET")

	usersRouter := router.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("/register", userController.Register).Methods("POST")
	usersRouter.HandleFunc("", userController.GetAll).Methods("GET")

	return &testEnv{router: router, users: userStore, tokens: tokenStore}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) register(t *testing.T, nickname, email, password string) dtos.UserCreatedResponse {
	t.Helper()
	body := `{"nickname":"` + nickname + `","email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := e.do(req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created dtos.UserCreatedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	return created
}

func (e *testEnv) login(t *testing.T, username, password string) dtos.TokenInfo {
	t.Helper()
	rr := e.do(loginRequest(username, password))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var tokens dtos.TokenInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
	return tokens
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func bearerRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func detailOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Detail
}
