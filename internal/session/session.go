package session

// Session is the decoded per-visitor key-value state carried in the session
// cookie. The zero value of the map is never exposed; New and Store.Load
// always return an initialized session.
type Session struct {
	values map[string]string
}

// Keys stored by the auth flow.
const (
	KeyUserID = "userId"
	KeyEmail  = "email"
)

// New returns an empty session.
func New() *Session {
	return &Session{values: make(map[string]string)}
}

// Get returns the value for key, or "" when absent.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set stores value under key. No I/O happens until the session is saved.
func (s *Session) Set(key, value string) {
	s.values[key] = value
}

// Unset removes key from the session.
func (s *Session) Unset(key string) {
	delete(s.values, key)
}

// Len returns the number of keys held by the session.
func (s *Session) Len() int {
	return len(s.values)
}
