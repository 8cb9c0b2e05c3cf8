package downloads

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-questionnaire/pkg/store"
)

var testSessionKey = bytes.Repeat([]byte("k"), MinSessionKeyLength)

func newTestSession(t *testing.T, st store.Store, opts ...SessionOption) *MobileSession {
	t.Helper()
	sess, err := NewMobileSession(st, testSessionKey, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess
}

// sessionCookie returns the cookie Remember sets for mobile.
func sessionCookie(t *testing.T, sess *MobileSession, mobile string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	sess.Remember(rec, httptest.NewRequest(http.MethodPost, "/", nil), store.Registration{MobileNumber: mobile})
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	return cookies[0]
}

func TestNewMobileSession_RejectsShortKey(t *testing.T) {
	if _, err := NewMobileSession(newTestStore(t), []byte("short")); err == nil {
		t.Fatalf("expected short key error")
	}
	if _, err := NewMobileSession(nil, testSessionKey); err == nil {
		t.Fatalf("expected nil store error")
	}
}

func TestMobileSession_Remember(t *testing.T) {
	sess := newTestSession(t, newTestStore(t), WithCookieName("qm"), WithSecureCookie(true))
	c := sessionCookie(t, sess, "9000000000")
	if c.Name != "qm" || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie = %+v", c)
	}
	if strings.Contains(c.Value, "9000000000") {
		t.Fatalf("cookie carries the raw mobile number: %q", c.Value)
	}
}

func TestMobileSession_Guard(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sess := newTestSession(t, st, WithSessionTTL(time.Hour), WithSessionClock(func() time.Time { return now }))

	own := sessionCookie(t, sess, "9000000000")
	other := sessionCookie(t, sess, "9111111111")
	tampered := *own
	tampered.Value = strings.Replace(own.Value, ".", "x.", 1)
	forged := *own
	forged.Value = sess.encode("9000000000", now.Add(time.Hour)) + "AA"

	guard := func(id string, c *http.Cookie) error {
		req := httptest.NewRequest(http.MethodGet, "/questionnaire/"+id+"/full", nil)
		req.SetPathValue("id", id)
		if c != nil {
			req.AddCookie(c)
		}
		return sess.Guard(req)
	}
	status := func(err error) int {
		var se StatusError
		if !errors.As(err, &se) {
			t.Fatalf("error %v is not a StatusError", err)
		}
		return se.StatusCode()
	}

	if err := guard(testID, own); err != nil {
		t.Fatalf("own cookie: %v", err)
	}

	cases := []struct {
		name   string
		id     string
		cookie *http.Cookie
		want   int
	}{
		{"NoCookie", testID, nil, http.StatusForbidden},
		{"OtherMobile", testID, other, http.StatusForbidden},
		{"Tampered", testID, &tampered, http.StatusForbidden},
		{"BadSignature", testID, &forged, http.StatusForbidden},
		{"UnknownApplication", "87654321", own, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := status(guard(tc.id, tc.cookie)); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}

	if err := guard(testID, other); !errors.Is(err, ErrMobileMismatch) {
		t.Fatalf("other mobile err = %v", err)
	}

	now = now.Add(2 * time.Hour)
	if err := guard(testID, own); !errors.Is(err, ErrMobileNotVerified) {
		t.Fatalf("expired cookie err = %v", err)
	}
}

func TestMobileSession_DownloadNeedsVerifiedMobile(t *testing.T) {
	st := newTestStore(t)
	h := New(WithStore(st), WithMobileSession(newTestSession(t, st))).Handler()

	full := func(c *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/questionnaire/"+testID+"/full", nil)
		if c != nil {
			req.AddCookie(c)
		}
		return serve(t, h, req)
	}

	if rec := full(nil); rec.Code != http.StatusForbidden {
		t.Fatalf("unverified status = %d", rec.Code)
	}
	reg, err := st.Respondent(context.Background(), testID)
	if err != nil {
		t.Fatalf("respondent: %v", err)
	}
	if reg.FullDownloaded {
		t.Fatalf("unverified request consumed the download")
	}

	form := url.Values{"mobile_number": {"9000000000"}}
	req := httptest.NewRequest(http.MethodPost, "/questionnaire/verify-mobile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultSessionCookie {
		t.Fatalf("cookies = %+v", cookies)
	}

	if rec := full(cookies[0]); rec.Code != http.StatusOK {
		t.Fatalf("verified status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec := full(cookies[0]); rec.Code != http.StatusForbidden {
		t.Fatalf("second download status = %d", rec.Code)
	}
}
