package layout

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Input carries everything a single layout needs. Section is only read in
// section mode.
type Input struct {
	Respondent questionnaire.Respondent
	Set        questionnaire.QuestionSet
	Mode       questionnaire.Mode
	Section    string
}

// Layout computes the page plan for in. It is pure: the only calls it makes
// are width measurements through m.
func Layout(m Measurer, in Input) (Plan, error) {
	if m == nil {
		return Plan{}, errors.New("layout: measurer is nil")
	}
	title := in.Set.Title
	if title == "" {
		title = questionnaire.DefaultTitle
	}

	switch in.Mode {
	case questionnaire.ModeFull:
		return layoutFull(m, in.Respondent, in.Set, title)
	case questionnaire.ModeSection:
		section, ok := in.Set.Lookup(in.Section)
		if !ok {
			return Plan{}, fmt.Errorf("layout: %w: %q", questionnaire.ErrUnknownSection, in.Section)
		}
		return layoutSection(m, in.Respondent, section, title)
	default:
		return Plan{}, fmt.Errorf("layout: unsupported mode %q", in.Mode)
	}
}

func layoutFull(m Measurer, r questionnaire.Respondent, set questionnaire.QuestionSet, title string) (Plan, error) {
	heading := title + " - Full"
	continued := heading + " (Continued)"
	appLine := r.ApplicationLine()

	s := newState(m)
	if err := s.centred(PageHeight-TitleOffset, FontBold, TitleSize, heading); err != nil {
		return Plan{}, err
	}
	s.text(Margin, PageHeight-FullInfoOffset, FontRegular, FullInfoSize, r.Summary())
	s.text(Margin, PageHeight-FullAppIDOffset, FontRegular, FullInfoSize, appLine)
	s.cursor = PageHeight - FullCursorStart

	lastSection := len(set.Sections) - 1
	for si, section := range set.Sections {
		number := si + 1
		s.text(Margin, s.cursor, FontBold, SectionSize, fmt.Sprintf("%d. %s", number, questionnaire.TitleFromKey(section.Key)))
		s.cursor -= SectionHeaderGap

		lastQuestion := len(section.Questions) - 1
		for qi, question := range section.Questions {
			err := s.question(
				fmt.Sprintf("%d. %s", qi+1, question),
				fmt.Sprintf("answer_%s_%d", section.Key, qi),
				fmt.Sprintf("Answer for question %d.%d", number, qi+1),
			)
			if err != nil {
				return Plan{}, err
			}
			// Look ahead spans sections in full mode.
			if s.cursor < BreakBelow && (si < lastSection || qi < lastQuestion) {
				if err := s.continuation(continued, Margin, FullInfoSize, appLine); err != nil {
					return Plan{}, err
				}
			}
		}
	}
	return s.plan(questionnaire.ModeFull, heading, r), nil
}

func layoutSection(m Measurer, r questionnaire.Respondent, section questionnaire.Section, title string) (Plan, error) {
	name := section.DisplayName()
	appLine := r.ApplicationLine()

	s := newState(m)
	if err := s.centred(PageHeight-TitleOffset, FontBold, TitleSize, title); err != nil {
		return Plan{}, err
	}
	s.text(SectionMargin, PageHeight-SectionNameOffset, FontBold, SectionSize, name)
	s.text(SectionMargin, PageHeight-SectionInfoOffset, FontRegular, SectionInfoSize, r.Summary())
	s.text(SectionMargin, PageHeight-SectionAppIDOffset, FontRegular, SectionInfoSize, appLine)
	s.cursor = PageHeight - SectionCursorStart

	last := len(section.Questions) - 1
	for i, question := range section.Questions {
		err := s.question(
			fmt.Sprintf("%d. %s", i+1, question),
			fmt.Sprintf("answer_%d", i),
			fmt.Sprintf("Answer for question %d", i+1),
		)
		if err != nil {
			return Plan{}, err
		}
		if s.cursor < BreakBelow && i < last {
			if err := s.continuation(name+" (Continued)", SectionMargin, SectionInfoSize, appLine); err != nil {
				return Plan{}, err
			}
		}
	}
	return s.plan(questionnaire.ModeSection, title+" - "+name, r), nil
}

// state is the mutable cursor a layout threads through its helpers.
type state struct {
	measure Measurer
	pages   []Page
	cursor  float64
}

func newState(m Measurer) *state {
	return &state{measure: m, pages: []Page{{}}}
}

func (s *state) page() *Page {
	return &s.pages[len(s.pages)-1]
}

func (s *state) text(x, y float64, font Font, size float64, value string) {
	p := s.page()
	p.Texts = append(p.Texts, Text{X: x, Y: y, Font: font, Size: size, Value: value})
}

func (s *state) centred(y float64, font Font, size float64, value string) error {
	w, err := s.measure.StringWidth(value, font, size)
	if err != nil {
		return fmt.Errorf("layout: measure %q: %w", value, err)
	}
	s.text((PageWidth-w)/2, y, font, size, value)
	return nil
}

// question places a wrapped label and its answer field starting at the
// cursor, then moves the cursor below the block.
func (s *state) question(label, name, tooltip string) error {
	lines, err := Wrap(s.measure, label, FontBold, QuestionSize, ContentWidth)
	if err != nil {
		return err
	}
	textY := s.cursor
	for _, line := range lines {
		s.text(Margin, textY, FontBold, QuestionSize, line)
		textY -= LineHeight
	}

	p := s.page()
	p.Fields = append(p.Fields, Field{
		Name:    name,
		Tooltip: tooltip,
		Rect: Rect{
			X:      Margin,
			Y:      textY - FieldHeight - FieldGap,
			Width:  ContentWidth,
			Height: FieldHeight,
		},
		FontSize: FieldFontSize,
		Flags:    FieldFlagMultiline,
	})
	s.cursor = textY - FieldHeight - QuestionGap
	return nil
}

func (s *state) continuation(heading string, x, infoSize float64, appLine string) error {
	s.pages = append(s.pages, Page{})
	s.cursor = PageHeight - TitleOffset
	if err := s.centred(s.cursor, FontBold, TitleSize, heading); err != nil {
		return err
	}
	s.cursor -= ContinuedAppIDGap
	s.text(x, s.cursor, FontRegular, infoSize, appLine)
	s.cursor -= ContinuedCursorGap
	return nil
}

func (s *state) plan(mode questionnaire.Mode, title string, r questionnaire.Respondent) Plan {
	return Plan{
		Mode:         mode,
		Title:        title,
		Subject:      r.ApplicationLine(),
		RegisteredAt: r.RegisteredAt,
		Pages:        s.pages,
	}
}
