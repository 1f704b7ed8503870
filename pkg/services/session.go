package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	sessionKey = "session"

	// written by earlier releases as two separate entries
	legacyLoggedInKey = "isLoggedIn"
	legacyUserKey     = "user"
)

// SessionStore tracks the login flag and profile. It gates screens and does
// not check credentials.
type SessionStore struct {
	kv  data.KV
	log zerolog.Logger

	mu      sync.RWMutex
	session data.Session
	loaded  bool
}

func NewSessionStore(kv data.KV, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		kv:  kv,
		log: log.With().Str("module", "session").Logger(),
	}
}

func (s *SessionStore) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}

	var session data.Session
	if ok {
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			s.log.Warn().Err(err).Msg("Failed to parse session, starting logged out")
			session = data.Session{}
		}
	} else {
		session, err = s.migrateLegacy(ctx)
		if err != nil {
			return err
		}
	}

	if !session.LoggedIn || session.Profile == nil {
		session = data.Session{}
	}

	s.mu.Lock()
	s.session = session
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// migrateLegacy folds the old isLoggedIn/user pair into one record.
func (s *SessionStore) migrateLegacy(ctx context.Context) (data.Session, error) {
	flag, hasFlag, err := s.kv.Get(ctx, legacyLoggedInKey)
	if err != nil {
		return data.Session{}, errors.Wrap(err, "failed to load legacy session")
	}
	rawUser, hasUser, err := s.kv.Get(ctx, legacyUserKey)
	if err != nil {
		return data.Session{}, errors.Wrap(err, "failed to load legacy session")
	}
	if !hasFlag && !hasUser {
		return data.Session{}, nil
	}

	var session data.Session
	if flag == "true" && hasUser {
		var profile data.Profile
		if err := json.Unmarshal([]byte(rawUser), &profile); err != nil {
			s.log.Warn().Err(err).Msg("Failed to parse legacy user data")
		} else {
			session = data.Session{LoggedIn: true, Profile: &profile}
		}
	}

	if session.LoggedIn {
		if err := s.save(ctx, session); err != nil {
			return data.Session{}, err
		}
	}
	_ = s.kv.Remove(ctx, legacyLoggedInKey)
	_ = s.kv.Remove(ctx, legacyUserKey)
	s.log.Info().Bool("loggedIn", session.LoggedIn).Msg("Migrated legacy session entries")
	return session, nil
}

func (s *SessionStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *SessionStore) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.LoggedIn
}

// Profile returns a copy of the current profile, nil when logged out.
func (s *SessionStore) Profile() *data.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.Profile == nil {
		return nil
	}
	p := *s.session.Profile
	return &p
}

func (s *SessionStore) Login(ctx context.Context, profile data.Profile) error {
	profile = normalizeProfile(profile)
	if profile.Name == "" && profile.Email == "" {
		return errors.New("profile needs a name or an email")
	}

	session := data.Session{LoggedIn: true, Profile: &profile}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, session); err != nil {
		return err
	}
	s.session = session
	s.log.Info().Str("name", profile.Name).Msg("Logged in")
	return nil
}

// UpdateProfile replaces the profile of the logged in user.
func (s *SessionStore) UpdateProfile(ctx context.Context, profile data.Profile) error {
	s.mu.RLock()
	loggedIn := s.session.LoggedIn
	s.mu.RUnlock()
	if !loggedIn {
		return errors.New("not logged in")
	}
	return s.Login(ctx, profile)
}

func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, sessionKey); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	s.session = data.Session{}
	s.log.Info().Msg("Logged out")
	return nil
}

func (s *SessionStore) save(ctx context.Context, session data.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}
	return errors.Wrap(s.kv.Set(ctx, sessionKey, string(raw)), "failed to save session")
}

func normalizeProfile(p data.Profile) data.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	return p
}
