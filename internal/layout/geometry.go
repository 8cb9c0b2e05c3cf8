package layout

// Letter page geometry in PDF points, origin at the bottom-left corner.
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	// Margin is the left edge of question text and answer fields, and the
	// left edge of header lines in full mode.
	Margin = 50.0
	// SectionMargin is the left edge of header lines in section mode.
	SectionMargin = 40.0
	// ContentWidth is the wrap width and the answer field width.
	ContentWidth = PageWidth - 2*Margin

	TitleOffset        = 50.0  // title baseline below the top edge
	FullCursorStart    = 130.0 // first question cursor below the top edge
	SectionCursorStart = 150.0

	FullInfoOffset     = 80.0  // respondent summary, full mode
	FullAppIDOffset    = 100.0 // application id, full mode
	SectionNameOffset  = 80.0
	SectionInfoOffset  = 100.0
	SectionAppIDOffset = 120.0

	ContinuedAppIDGap  = 50.0 // application id line below a continued title
	ContinuedCursorGap = 30.0 // cursor below the continued application id
	SectionHeaderGap   = 30.0 // cursor advance after a full-mode section header

	LineHeight    = 15.0
	FieldHeight   = 80.0
	FieldGap      = 10.0 // between the last text line and the field top
	QuestionGap   = 40.0 // between the last text line and the next cursor
	BreakBelow    = 100.0
	FieldFontSize = 10.0

	// FieldFlagMultiline is the /Ff bit for multi-line text fields.
	FieldFlagMultiline = 1 << 12
)

// Font sizes used by the document.
const (
	TitleSize       = 16.0
	SectionSize     = 14.0
	QuestionSize    = 11.0
	FullInfoSize    = 10.0
	SectionInfoSize = 9.0
)

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the upper edge.
func (r Rect) Top() float64 { return r.Y + r.Height }
