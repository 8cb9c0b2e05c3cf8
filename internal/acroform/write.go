package acroform

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

type pendingObject struct {
	ref  Ref
	body []byte
}

// update accumulates the objects of one incremental section.
type update struct {
	doc     *document
	next    int
	objects []pendingObject
}

func newUpdate(doc *document) *update {
	return &update{doc: doc, next: doc.size}
}

func (u *update) add(body []byte) Ref {
	ref := Ref{Num: u.next}
	u.next++
	u.objects = append(u.objects, pendingObject{ref: ref, body: body})
	return ref
}

func (u *update) replace(ref Ref, body []byte) {
	u.objects = append(u.objects, pendingObject{ref: ref, body: body})
}

// bytes serialises the base document followed by the update section.
func (u *update) bytes() []byte {
	var buf bytes.Buffer
	buf.Write(u.doc.data)
	if n := len(u.doc.data); n > 0 && u.doc.data[n-1] != '\n' {
		buf.WriteByte('\n')
	}

	offsets := make(map[int]int, len(u.objects))
	gens := make(map[int]int, len(u.objects))
	for _, obj := range u.objects {
		offsets[obj.ref.Num] = buf.Len()
		gens[obj.ref.Num] = obj.ref.Gen
		fmt.Fprintf(&buf, "%d %d obj\n", obj.ref.Num, obj.ref.Gen)
		buf.Write(obj.body)
		buf.WriteString("\nendobj\n")
	}

	nums := make([]int, 0, len(offsets))
	for num := range offsets {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	xrefAt := buf.Len()
	buf.WriteString("xref\n")
	for start := 0; start < len(nums); {
		end := start + 1
		for end < len(nums) && nums[end] == nums[end-1]+1 {
			end++
		}
		fmt.Fprintf(&buf, "%d %d\n", nums[start], end-start)
		for _, num := range nums[start:end] {
			fmt.Fprintf(&buf, "%010d %05d n \n", offsets[num], gens[num])
		}
		start = end
	}

	buf.WriteString("trailer\n<<\n")
	fmt.Fprintf(&buf, "/Size %d\n", u.next)
	fmt.Fprintf(&buf, "/Root %s\n", u.doc.root)
	if u.doc.info != nil {
		fmt.Fprintf(&buf, "/Info %s\n", *u.doc.info)
	}
	fmt.Fprintf(&buf, "/Prev %d\n", u.doc.startxref)
	buf.WriteString(">>\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n%%%%EOF\n", xrefAt)
	return buf.Bytes()
}

func helveticaFont() []byte {
	return []byte("<</Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding>>")
}

func widgetDict(f TextField, page, appearance Ref) []byte {
	var b strings.Builder
	b.WriteString("<</Type /Annot /Subtype /Widget /FT /Tx")
	fmt.Fprintf(&b, " /T %s", literal(f.Name))
	if f.Tooltip != "" {
		fmt.Fprintf(&b, " /TU %s", literal(f.Tooltip))
	}
	if f.Flags != 0 {
		fmt.Fprintf(&b, " /Ff %d", f.Flags)
	}
	if f.Value != "" {
		fmt.Fprintf(&b, " /V %s", literal(f.Value))
	}
	fmt.Fprintf(&b, " /F 4 /Rect [%s %s %s %s]", num(f.X), num(f.Y), num(f.X+f.Width), num(f.Y+f.Height))
	fmt.Fprintf(&b, " /P %s", page)
	fmt.Fprintf(&b, " /DA (/Helv %s Tf 0 g)", num(fontSize(f)))
	b.WriteString(" /MK <</BC [0 0 0] /BG [1 1 1]>> /BS <</W 1 /S /S>>")
	fmt.Fprintf(&b, " /AP <</N %s>>>>", appearance)
	return []byte(b.String())
}

// appearanceStream draws the white box with a one point black border that
// viewers show before the field is edited.
func appearanceStream(f TextField, font Ref) []byte {
	w, h := num(f.Width), num(f.Height)
	content := fmt.Sprintf("1 g 0 0 %s %s re f 0 G 1 w 0.5 0.5 %s %s re S", w, h, num(f.Width-1), num(f.Height-1))
	return []byte(fmt.Sprintf(
		"<</Type /XObject /Subtype /Form /BBox [0 0 %s %s] /Resources <</Font <</Helv %s>>>> /Length %d>>\nstream\n%s\nendstream",
		w, h, font, len(content), content,
	))
}

func acroFormDict(fields []Ref, font Ref) []byte {
	return []byte(fmt.Sprintf(
		"<</Fields %s /DA (/Helv 0 Tf 0 g) /DR <</Font <</Helv %s>>>> /NeedAppearances true>>",
		refArray(fields), font,
	))
}

func fontSize(f TextField) float64 {
	if f.FontSize <= 0 {
		return 10
	}
	return f.FontSize
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// literal encodes s as a PDF text string: an escaped literal for ASCII and
// a UTF-16BE hex string with byte order mark otherwise.
func literal(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			var b strings.Builder
			b.WriteString("<FEFF")
			for _, unit := range utf16.Encode([]rune(s)) {
				fmt.Fprintf(&b, "%04X", unit)
			}
			b.WriteString(">")
			return b.String()
		}
	}
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`, "\n", `\n`)
	return "(" + r.Replace(s) + ")"
}
