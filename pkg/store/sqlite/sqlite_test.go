package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/store"
	"github.com/goliatone/go-questionnaire/pkg/store/sqlite"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T, options ...sqlite.Option) *sqlite.Store {
	t.Helper()

	options = append([]sqlite.Option{sqlite.WithClock(func() time.Time { return fixedNow })}, options...)
	s, err := sqlite.Open(context.Background(), sqlite.Memory, options...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func registration() store.Registration {
	return store.Registration{
		Name:             "Asha Rao",
		Gender:           "Female",
		MobileNumber:     "9876543210",
		Email:            "asha@example.org",
		State:            "Karnataka",
		PlaceOfResidence: "Mysuru",
		Profession:       "Academician",
		Specialization:   "Public Administration",
	}
}

func TestCreateAndLoadRespondent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)

	created, err := s.CreateRespondent(ctx, registration())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.ApplicationID) != 8 {
		t.Fatalf("application id = %q", created.ApplicationID)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created at = %v", created.CreatedAt)
	}

	loaded, err := s.Respondent(ctx, created.ApplicationID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(created, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	byMobile, err := s.RespondentByMobile(ctx, "9876543210")
	if err != nil {
		t.Fatalf("by mobile: %v", err)
	}
	if byMobile.ApplicationID != created.ApplicationID {
		t.Fatalf("by mobile id = %q", byMobile.ApplicationID)
	}

	respondent := loaded.Respondent()
	if respondent.ApplicationID != created.ApplicationID || respondent.Name != "Asha Rao" {
		t.Fatalf("respondent projection = %+v", respondent)
	}

	if _, err := s.Respondent(ctx, "00000000"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := s.RespondentByMobile(ctx, "0000000000"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateRespondent_Validation(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	reg := registration()
	reg.Gender = "Unknown"
	reg.MobileNumber = "12"
	reg.Profession = "Astronaut"

	_, err := s.CreateRespondent(context.Background(), reg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"gender", "mobile", "profession"} {
		if !containsFold(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestCreateRespondent_RetriesCollisions(t *testing.T) {
	t.Parallel()

	ids := []string{"11111111", "11111111", "22222222"}
	var mu sync.Mutex
	next := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	s := newStore(t, sqlite.WithIDGenerator(next))
	first, err := s.CreateRespondent(context.Background(), registration())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := s.CreateRespondent(context.Background(), registration())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ApplicationID != "11111111" || second.ApplicationID != "22222222" {
		t.Fatalf("ids = %q, %q", first.ApplicationID, second.ApplicationID)
	}

	bad := newStore(t, sqlite.WithIDGenerator(func() (string, error) { return "abc", nil }))
	if _, err := bad.CreateRespondent(context.Background(), registration()); err == nil {
		t.Fatalf("expected invalid id error")
	}
}

func TestClaims(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)
	reg, err := s.CreateRespondent(ctx, registration())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := reg.ApplicationID

	if err := s.ClaimFullDownload(ctx, id); err != nil {
		t.Fatalf("first full claim: %v", err)
	}
	if err := s.ClaimFullDownload(ctx, id); !errors.Is(err, store.ErrAlreadyDownloaded) {
		t.Fatalf("second full claim = %v", err)
	}
	if err := s.ReleaseFullDownload(ctx, id); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := s.ClaimFullDownload(ctx, id); err != nil {
		t.Fatalf("claim after release: %v", err)
	}
	if err := s.ClaimFullDownload(ctx, "99999999"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown respondent = %v", err)
	}

	for _, key := range []string{"financial", "legislative"} {
		if err := s.ClaimSectionDownload(ctx, id, key); err != nil {
			t.Fatalf("claim %s: %v", key, err)
		}
	}
	if err := s.ClaimSectionDownload(ctx, id, "financial"); !errors.Is(err, store.ErrAlreadyDownloaded) {
		t.Fatalf("second section claim = %v", err)
	}
	if err := s.ClaimSectionDownload(ctx, "99999999", "financial"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown respondent = %v", err)
	}

	loaded, err := s.Respondent(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.FullDownloaded {
		t.Fatalf("full download flag not persisted")
	}
	if !loaded.HasDownloaded("financial") || loaded.HasDownloaded("articles") {
		t.Fatalf("sections = %v", loaded.SectionsDownloaded)
	}

	if err := s.ReleaseSectionDownload(ctx, id, "financial"); err != nil {
		t.Fatalf("release section: %v", err)
	}
	sections, err := s.DownloadedSections(ctx, id)
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if diff := cmp.Diff([]string{"legislative"}, sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestClaims_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)
	reg, err := s.CreateRespondent(ctx, registration())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.ClaimSectionDownload(ctx, reg.ApplicationID, "challenges")
			if err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
				return
			}
			if !errors.Is(err, store.ErrAlreadyDownloaded) {
				t.Errorf("unexpected claim error: %v", err)
			}
		}()
	}
	wg.Wait()

	if granted != 1 {
		t.Fatalf("granted = %d, want 1", granted)
	}
}

func TestResponses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)
	reg, err := s.CreateRespondent(ctx, registration())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	saved, err := s.SaveResponse(ctx, store.Response{
		ApplicationID:    reg.ApplicationID,
		VerificationCode: "code-1",
		Filename:         "answers.pdf",
		PDF:              []byte("%PDF-1.3"),
		Answers:          map[string]string{"answer_0": "Three lists"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	loaded, err := s.ResponseByCode(ctx, "code-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}

	if err := s.MarkResponseVerified(ctx, "code-1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	loaded, err = s.ResponseByCode(ctx, "code-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Verified {
		t.Fatalf("expected verified response")
	}

	if err := s.MarkResponseVerified(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("verify missing = %v", err)
	}
	if _, err := s.SaveResponse(ctx, store.Response{ApplicationID: "99999999", VerificationCode: "x", PDF: []byte("x")}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("save for unknown respondent = %v", err)
	}
	if _, err := s.SaveResponse(ctx, store.Response{ApplicationID: reg.ApplicationID, VerificationCode: "code-1", PDF: []byte("x")}); err == nil {
		t.Fatalf("expected duplicate code error")
	}
}

func TestOpen_File(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "questionnaire.db")

	s, err := sqlite.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	reg, err := s.CreateRespondent(ctx, registration())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlite.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Respondent(ctx, reg.ApplicationID); err != nil {
		t.Fatalf("load after reopen: %v", err)
	}

	if _, err := sqlite.Open(ctx, " "); err == nil {
		t.Fatalf("expected empty path error")
	}
}

func TestRandomApplicationID(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		id, err := sqlite.RandomApplicationID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(id) != 8 || id[0] == '0' {
			t.Fatalf("id = %q", id)
		}
		var n int
		if _, err := fmt.Sscanf(id, "%d", &n); err != nil || n < 10000000 || n > 99999999 {
			t.Fatalf("id %q out of range", id)
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
