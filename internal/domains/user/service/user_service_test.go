package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presskit-backend/internal/domains/user"
	"presskit-backend/pkg/jwt"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.AuthUser
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID]*user.UserProfile // keyed by auth user ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]*user.AuthUser),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]*user.UserProfile),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *user.AuthUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[u.Email]; exists {
		return user.ErrEmailAlreadyExists
	}
	cp := *u
	f.users[u.ID] = &cp
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*user.AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *f.users[id]
	return &cp, nil
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*user.AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserRepo) CreateProfile(ctx context.Context, p *user.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.AuthUserID] = &cp
	return nil
}

func (f *fakeUserRepo) FindProfileByAuthID(ctx context.Context, authUserID uuid.UUID) (*user.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[authUserID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, authUserID uuid.UUID, req user.UpdateProfileRequest) (*user.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[authUserID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	if req.ArtistName != nil {
		p.ArtistName = *req.ArtistName
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakeUserRepo) DeleteProfile(ctx context.Context, authUserID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[authUserID]; !ok {
		return user.ErrProfileNotFound
	}
	delete(f.profiles, authUserID)
	return nil
}

// fakeSessionCache mimics the Redis session store, including prefix
// matching for DeletePattern.
type fakeSessionCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{store: make(map[string][]byte)}
}

func (f *fakeSessionCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeSessionCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeSessionCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeSessionCache) DeletePattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.store {
		if strings.HasPrefix(k, prefix) {
			delete(f.store, k)
		}
	}
	return nil
}

func (f *fakeSessionCache) Ping(ctx context.Context) error { return nil }

func (f *fakeSessionCache) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.store)
}

// ========================================
// FIXTURE
// ========================================

func newService(t *testing.T) (user.Service, *fakeUserRepo, *fakeSessionCache) {
	t.Helper()
	repo := newFakeUserRepo()
	sessions := newFakeSessionCache()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(repo, manager, sessions), repo, sessions
}

func signUpRequest() user.SignUpRequest {
	return user.SignUpRequest{
		Email:      "artist@example.com",
		Password:   "supersecret",
		ArtistName: "DJ Shadow",
	}
}

// ========================================
// TESTS
// ========================================

func TestSignUpCreatesIdentityAndProfile(t *testing.T) {
	svc, repo, sessions := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	assert.Equal(t, "artist@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Session.AccessToken)
	assert.NotEmpty(t, resp.Session.RefreshToken)
	assert.Equal(t, 1, sessions.size())

	profile, err := repo.FindProfileByAuthID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "DJ Shadow", profile.ArtistName)
	assert.Equal(t, user.SubscriptionFree, profile.Subscription)
	assert.Equal(t, user.DefaultPresskitLimit, profile.PresskitLimit)
}

func TestSignUpNeverStoresPlaintextPassword(t *testing.T) {
	svc, repo, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	stored, err := repo.FindUserByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "supersecret")
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), signUpRequest())
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestSignInWithCorrectPassword(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	resp, err := svc.SignIn(context.Background(), user.SignInRequest{
		Email:    "artist@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Session.AccessToken)
}

func TestSignInWrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, wrongPassword := svc.SignIn(context.Background(), user.SignInRequest{
		Email:    "artist@example.com",
		Password: "wrongpassword",
	})
	_, unknownEmail := svc.SignIn(context.Background(), user.SignInRequest{
		Email:    "ghost@example.com",
		Password: "supersecret",
	})

	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
}

func TestSignOutRevokesAllSessions(t *testing.T) {
	svc, _, sessions := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), user.SignInRequest{
		Email:    "artist@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, 2, sessions.size())

	require.NoError(t, svc.SignOut(context.Background(), resp.User.ID))
	assert.Equal(t, 0, sessions.size())
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, sessions := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	refreshed, err := svc.RefreshSession(context.Background(), resp.Session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Session.RefreshToken, refreshed.Session.RefreshToken)
	assert.Equal(t, 1, sessions.size(), "old session replaced, not accumulated")

	// The rotated-out token is dead.
	_, err = svc.RefreshSession(context.Background(), resp.Session.RefreshToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefreshAfterSignOut(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), resp.User.ID))

	_, err = svc.RefreshSession(context.Background(), resp.Session.RefreshToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = svc.RefreshSession(context.Background(), resp.Session.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestUpdateProfileEmptyPatchIsNoOp(t *testing.T) {
	svc, repo, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	before, err := repo.FindProfileByAuthID(context.Background(), resp.User.ID)
	require.NoError(t, err)

	after, err := svc.UpdateProfile(context.Background(), resp.User.ID, user.UpdateProfileRequest{})
	require.NoError(t, err)

	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, before.ArtistName, after.ArtistName)
}

func TestUpdateProfileAppliesPatch(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	name := "New Stage Name"
	profile, err := svc.UpdateProfile(context.Background(), resp.User.ID, user.UpdateProfileRequest{
		ArtistName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Stage Name", profile.ArtistName)
}

func TestGetProfileMissingRow(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrProfileNotFound)
}

func TestDeleteProfile(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(context.Background(), resp.User.ID))

	_, err = svc.GetProfile(context.Background(), resp.User.ID)
	assert.ErrorIs(t, err, user.ErrProfileNotFound)
}
