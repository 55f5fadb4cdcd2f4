package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/utils"
)

// ------------------------------------------------------------
// In-memory fakes for the repository interfaces
// ------------------------------------------------------------

type fakeTokenStore struct {
	mu         sync.Mutex
	records    map[string]*models.TokenRecord
	nextID     int64
	failCreate error
	getCalls   int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{records: make(map[string]*models.TokenRecord)}
}

func (s *fakeTokenStore) Create(ctx context.Context, record *models.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	s.nextID++
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	stored := *record
	s.records[record.JTI] = &stored
	return nil
}

func (s *fakeTokenStore) GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	rec, ok := s.records[jti]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeTokenStore) RevokeByJTI(ctx context.Context, jti string, reason string) (int64, error) {
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

func (s *fakeTokenStore) RevokeAllByUserID(ctx context.Context, userID int64, reason string) ([]string, error) {
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

func (s *fakeTokenStore) CleanupExpired(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, rec := range s.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.records, jti)
		}
	}
	return nil
}

func (s *fakeTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
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

func (s *fakeUserStore) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
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

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetAll(ctx context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ------------------------------------------------------------
// Shared helpers
// ------------------------------------------------------------

func newTestCodec(t *testing.T) TokenCodec {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewRSATokenCodec(key, &key.PublicKey)
}

func testUser() *models.User {
	return &models.User{
		ID:       1,
		Nickname: "test_user",
		Email:    "test_user@example.com",
		IsActive: true,
	}
}

func testRequestContext() models.RequestContext {
	return models.RequestContext{
		IPAddress: "203.0.113.10",
		UserAgent: "go-test-agent/1.0",
	}
}
