package downloads

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

const (
	DefaultSessionCookie = "questionnaire_mobile"
	DefaultSessionTTL    = 2 * time.Hour

	// MinSessionKeyLength is the shortest accepted signing key in bytes.
	MinSessionKeyLength = 32
)

var (
	ErrMobileNotVerified = errors.New("downloads: mobile number not verified")
	ErrMobileMismatch    = errors.New("downloads: mobile number does not match the registration")
)

// MobileSession remembers a verified mobile number in a signed, HttpOnly
// cookie and only lets that number reach the application routes of the
// registration it belongs to.
type MobileSession struct {
	key    []byte
	store  store.Store
	cookie string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

type SessionOption func(*MobileSession)

func WithCookieName(name string) SessionOption {
	return func(m *MobileSession) {
		if name != "" {
			m.cookie = name
		}
	}
}

func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(m *MobileSession) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookie marks the cookie Secure even on plain HTTP requests,
// for deployments behind a TLS-terminating proxy.
func WithSecureCookie(secure bool) SessionOption {
	return func(m *MobileSession) {
		m.secure = secure
	}
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *MobileSession) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMobileSession signs cookies with key, which must be at least
// MinSessionKeyLength bytes.
func NewMobileSession(st store.Store, key []byte, opts ...SessionOption) (*MobileSession, error) {
	if st == nil {
		return nil, errors.New("downloads: session store is nil")
	}
	if len(key) < MinSessionKeyLength {
		return nil, fmt.Errorf("downloads: session key must be at least %d bytes", MinSessionKeyLength)
	}
	m := &MobileSession{
		key:    append([]byte(nil), key...),
		store:  st,
		cookie: DefaultSessionCookie,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m, nil
}

// WithMobileSession installs s as both the guard and the mobile
// verification hook.
func WithMobileSession(s *MobileSession) OptionFn {
	return func(o *Options) {
		if o == nil || s == nil {
			return
		}
		o.Guard = s.Guard
		o.MobileVerified = s.Remember
	}
}

// Remember implements MobileVerifiedFunc.
func (m *MobileSession) Remember(w http.ResponseWriter, r *http.Request, reg store.Registration) {
	expires := m.now().Add(m.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    m.encode(reg.MobileNumber, expires),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Guard implements GuardFunc. It answers 403 without a valid cookie or when
// the cookie's mobile number differs from the registration's, and 404 for
// unknown registrations.
func (m *MobileSession) Guard(r *http.Request) error {
	c, err := r.Cookie(m.cookie)
	if err != nil {
		return StatusError{Code: http.StatusForbidden, Err: ErrMobileNotVerified}
	}
	mobile, err := m.decode(c.Value)
	if err != nil {
		return StatusError{Code: http.StatusForbidden, Err: err}
	}

	reg, err := m.store.Respondent(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return StatusError{Code: http.StatusNotFound, Err: err}
	case err != nil:
		return StatusError{Code: http.StatusInternalServerError, Err: err}
	}
	if reg.MobileNumber != mobile {
		return StatusError{Code: http.StatusForbidden, Err: ErrMobileMismatch}
	}
	return nil
}

// Cookie values are base64url(mobile) "." unix expiry "." base64url(mac).
func (m *MobileSession) encode(mobile string, expires time.Time) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(mobile)) + "." + strconv.FormatInt(expires.Unix(), 10)
	return payload + "." + base64.RawURLEncoding.EncodeToString(m.sign(payload))
}

func (m *MobileSession) decode(value string) (string, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: malformed session", ErrMobileNotVerified)
	}
	mac, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil || !hmac.Equal(mac, m.sign(parts[0]+"."+parts[1])) {
		return "", fmt.Errorf("%w: bad signature", ErrMobileNotVerified)
	}
	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || !m.now().Before(time.Unix(expires, 0)) {
		return "", fmt.Errorf("%w: session expired", ErrMobileNotVerified)
	}
	mobile, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: malformed session", ErrMobileNotVerified)
	}
	return string(mobile), nil
}

func (m *MobileSession) sign(payload string) []byte {
	h := hmac.New(sha256.New, m.key)
	h.Write([]byte(payload))
	return h.Sum(nil)
}
