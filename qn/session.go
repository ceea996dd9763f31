package qn

import (
	"crypto/rand"
	"encoding/base32"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/ztrue/tracerr"
)

// ErrSessionInvalid raises when session is invalid.
var ErrSessionInvalid = tracerr.New("session invalid")

// SessionData is the structure stored in session.
type SessionData struct {
	UID  int64 `gob:"uid"`
	Time int64 `gob:"time"`
}

func generateRandomKey() string {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		panic(err)
	}
	return strings.TrimRight(base32.StdEncoding.EncodeToString(k), "=")
}

// SaveSession saves SessionData to sessions.Session. The session id mixes
// a fresh uuid with a random key so ids stay unique across users.
func (s *SessionData) SaveSession(session *sessions.Session) {
	session.Values["uid"] = s.UID
	session.Values["time"] = s.Time
	session.ID = strings.ToUpper(uuid.NewString() + "_" + generateRandomKey())
}

// LoadSession parses SessionData from sessions.Session.
func LoadSession(session *sessions.Session) (*SessionData, error) {
	uid, ok := session.Values["uid"].(int64)
	if !ok {
		return nil, ErrSessionInvalid
	}
	t, ok := session.Values["time"].(int64)
	if !ok {
		return nil, ErrSessionInvalid
	}
	return &SessionData{
		UID:  uid,
		Time: t,
	}, nil
}
