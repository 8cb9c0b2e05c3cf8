package questionnaire_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

func TestValidateApplicationID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"12345678", true},
		{"00000000", true},
		{"1234567", false},
		{"123456789", false},
		{"1234567a", false},
		{"", false},
		{"１2345678", false},
	}
	for _, tc := range cases {
		err := questionnaire.ValidateApplicationID(tc.id)
		if tc.valid && err != nil {
			t.Fatalf("ValidateApplicationID(%q) unexpected error: %v", tc.id, err)
		}
		if !tc.valid && !errors.Is(err, questionnaire.ErrInvalidApplicationID) {
			t.Fatalf("ValidateApplicationID(%q) = %v, want ErrInvalidApplicationID", tc.id, err)
		}
	}
}

func TestRespondentSummary(t *testing.T) {
	r := questionnaire.Respondent{
		Name:           "Asha Rao",
		Profession:     "Academician",
		Specialization: "Constitutional Law",
		State:          "Kerala",
		RegisteredAt:   time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		ApplicationID:  "12345678",
	}
	want := "Name: Asha Rao | Profession: Academician | Specialization: Constitutional Law | State: Kerala | Date: 05-03-2024"
	if got := r.Summary(); got != want {
		t.Fatalf("summary mismatch\nwant %q\n got %q", want, got)
	}
	if got := r.ApplicationLine(); got != "Application ID: 12345678" {
		t.Fatalf("unexpected application line %q", got)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	r.Name = "  "
	if err := r.Validate(); err == nil {
		t.Fatalf("expected blank name to fail validation")
	}
}

func TestRespondentSanitized(t *testing.T) {
	r := questionnaire.Respondent{
		Name:  "<b>Asha</b>   Rao<script>alert(1)</script>",
		State: "Jammu &amp; Kashmir",
	}
	got := r.Sanitized()
	if got.Name != "Asha Rao" {
		t.Fatalf("expected markup stripped, got %q", got.Name)
	}
	if got.State != "Jammu & Kashmir" {
		t.Fatalf("expected entities decoded, got %q", got.State)
	}
}

func TestSanitizeTextKeepsStrayAngleBrackets(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x<y", "x<y"},
		{"Article 356 < Article 365", "Article 356 < Article 365"},
		{"a <= b", "a <= b"},
		{"trailing <", "trailing <"},
		{"a<b>c", "ac"},
		{"<i>Meera</i> <!-- note --> Iyer", "Meera Iyer"},
		{"1 < 2 <em>and</em> 3", "1 < 2 and 3"},
	}
	for _, tc := range cases {
		if got := questionnaire.SanitizeText(tc.in); got != tc.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCentreStateCanonicalOrder(t *testing.T) {
	set := questionnaire.CentreState()
	want := []string{
		"legislative", "administrative", "financial", "commissions",
		"constitutional", "challenges", "examples", "articles", "financial_articles",
	}
	if diff := cmp.Diff(want, set.Keys()); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
	if got := set.QuestionCount(); got != 24 {
		t.Fatalf("expected 24 questions, got %d", got)
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	legislative, ok := set.Lookup("legislative")
	if !ok || len(legislative.Questions) != 4 {
		t.Fatalf("expected 4 legislative questions, got %+v", legislative)
	}
}

func TestCentreStateReturnsCopies(t *testing.T) {
	first := questionnaire.CentreState()
	first.Sections[0].Questions[0] = "mutated"
	second := questionnaire.CentreState()
	if second.Sections[0].Questions[0] == "mutated" {
		t.Fatalf("expected independent copies of the compiled-in set")
	}
}

func TestQuestionSetOnly(t *testing.T) {
	set := questionnaire.CentreState()
	only, err := set.Only("financial")
	if err != nil {
		t.Fatalf("only: %v", err)
	}
	if diff := cmp.Diff([]string{"financial"}, only.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if only.Title != questionnaire.DefaultTitle {
		t.Fatalf("expected title preserved, got %q", only.Title)
	}

	if _, err := set.Only("missing"); !errors.Is(err, questionnaire.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestQuestionSetValidateRejectsDuplicates(t *testing.T) {
	set := questionnaire.QuestionSet{Sections: []questionnaire.Section{
		{Key: "a"}, {Key: "b"}, {Key: "a"},
	}}
	if err := set.Validate(); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	set = questionnaire.QuestionSet{Sections: []questionnaire.Section{{Key: ""}}}
	if err := set.Validate(); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestSectionDisplayName(t *testing.T) {
	cases := map[string]questionnaire.Section{
		"Financial Articles":  {Key: "financial_articles"},
		"Legislative":         {Key: "legislative"},
		"Important Articles":  {Key: "articles", Name: "Important Articles"},
		"Role Of Commissions": {Key: "role_of_commissions"},
	}
	for want, section := range cases {
		if got := section.DisplayName(); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", section.Key, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]questionnaire.Mode{
		"full": questionnaire.ModeFull, "": questionnaire.ModeFull,
		"Section": questionnaire.ModeSection,
	} {
		got, err := questionnaire.ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := questionnaire.ParseMode("pages"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestChoices(t *testing.T) {
	if !questionnaire.IsProfession("MP/MLA") || questionnaire.IsProfession("Astronaut") {
		t.Fatalf("profession membership mismatch")
	}
	if !questionnaire.IsSpecialization("Economics") || !questionnaire.IsGender("Transgender") {
		t.Fatalf("choice membership mismatch")
	}
	if len(questionnaire.Professions) != 11 || len(questionnaire.Specializations) != 5 {
		t.Fatalf("unexpected choice counts")
	}
}

func TestSourceFromLocation(t *testing.T) {
	if src := questionnaire.SourceFromLocation("https://example.com/q.yaml"); src.Kind() != questionnaire.SourceKindURL {
		t.Fatalf("expected URL source, got %s", src.Kind())
	}
	if src := questionnaire.SourceFromLocation("testdata/q.yaml"); src.Kind() != questionnaire.SourceKindFile {
		t.Fatalf("expected file source, got %s", src.Kind())
	}
	if _, err := questionnaire.ParseSourceURL("ftp://example.com/q.yaml"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
}
