package pdf

import (
	"bytes"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-questionnaire/internal/layout"
)

const (
	coreFamily   = "Helvetica"
	customFamily = "QuestionnaireSans"
)

// fontSet maps layout font roles onto fpdf faces. The zero value selects the
// core Helvetica family.
type fontSet struct {
	regular []byte
	bold    []byte
}

func (fs fontSet) custom() bool { return len(fs.regular) > 0 }

func (fs fontSet) face(font layout.Font) (family, style string) {
	family = coreFamily
	if fs.custom() {
		family = customFamily
	}
	if font == layout.FontBold {
		style = "B"
	}
	return family, style
}

// register installs custom faces into doc. Core fonts need no registration.
func (fs fontSet) register(doc *fpdf.Fpdf) {
	if !fs.custom() {
		return
	}
	doc.AddUTF8FontFromBytes(customFamily, "", fs.regular)
	doc.AddUTF8FontFromBytes(customFamily, "B", fs.bold)
}

// resolveFonts loads the optional TrueType assets. Any failure yields the
// core family for both roles so regular and bold text always match.
func resolveFonts(regularPath, boldPath string, regularData, boldData []byte) fontSet {
	regular := regularData
	if len(regular) == 0 && regularPath != "" {
		regular = readFont(regularPath)
	}
	bold := boldData
	if len(bold) == 0 && boldPath != "" {
		bold = readFont(boldPath)
	}
	if len(bold) == 0 {
		bold = regular
	}
	if !usableTrueType(regular) || !usableTrueType(bold) {
		return fontSet{}
	}
	return fontSet{regular: regular, bold: bold}
}

func readFont(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

var (
	trueTypeMagic = []byte{0x00, 0x01, 0x00, 0x00}
	appleMagic    = []byte("true")
)

// usableTrueType reports whether fpdf can parse data and select it as a font.
func usableTrueType(data []byte) (ok bool) {
	if len(data) < 12 {
		return false
	}
	if !bytes.HasPrefix(data, trueTypeMagic) && !bytes.HasPrefix(data, appleMagic) {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	probe := fpdf.New("P", "pt", "Letter", "")
	probe.AddUTF8FontFromBytes("probe", "", data)
	probe.SetFont("probe", "", 10)
	return probe.Ok()
}
