package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName is the session cookie issued to every authenticated visitor.
const CookieName = "__session"

// TTL bounds session validity regardless of activity.
const TTL = 7 * 24 * time.Hour

// Store encodes sessions into an encrypted, authenticated cookie and back.
// Construct once at startup and share across handlers; the codec is safe for
// concurrent use.
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewStore derives the cookie signing and encryption keys from secret.
// secure controls the cookie's Secure attribute and should be true in
// production deployments.
func NewStore(secret string, secure bool) *Store {
	hashKey := sha256.Sum256([]byte(secret + "/hmac"))
	blockKey := sha256.Sum256([]byte(secret + "/aes"))

	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(int(TTL.Seconds()))

	return &Store{codec: codec, secure: secure}
}

// Load decodes the session cookie from the request. A missing cookie, a bad
// signature, undecryptable content, or an expired timestamp all yield a fresh
// empty session; the request itself never fails on session state.
func (st *Store) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return New()
	}

	values := make(map[string]string)
	if err := st.codec.Decode(CookieName, cookie.Value, &values); err != nil {
		return New()
	}

	return &Session{values: values}
}

// Save re-encrypts the session and writes it as a Set-Cookie header with a
// fresh 7-day Max-Age.
func (st *Store) Save(w http.ResponseWriter, s *Session) error {
	encoded, err := st.codec.Encode(CookieName, s.values)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   st.secure,
	})
	return nil
}

// Destroy writes a Set-Cookie header that expires the session cookie
// immediately.
func (st *Store) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   st.secure,
	})
}
