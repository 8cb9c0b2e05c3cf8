package acroform

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	objHeaderRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+obj\b`)
	refRe       = regexp.MustCompile(`(\d+)\s+(\d+)\s+R\b`)
	rootRe      = regexp.MustCompile(`/Root\s+(\d+)\s+(\d+)\s+R\b`)
	infoRe      = regexp.MustCompile(`/Info\s+(\d+)\s+(\d+)\s+R\b`)
	sizeRe      = regexp.MustCompile(`/Size\s+(\d+)`)
	prevRe      = regexp.MustCompile(`/Prev\s+(\d+)`)
	pagesRe     = regexp.MustCompile(`/Pages\s+(\d+)\s+(\d+)\s+R\b`)
	kidsRe      = regexp.MustCompile(`/Kids\s*\[([^\]]*)\]`)
	typePagesRe = regexp.MustCompile(`/Type\s*/Pages\b`)
)

// Ref is an indirect object reference.
type Ref struct {
	Num int
	Gen int
}

func (r Ref) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// document is the minimal view of an existing file that an incremental
// update needs.
type document struct {
	data      []byte
	startxref int
	size      int
	root      Ref
	info      *Ref
	offsets   map[int]int
}

func parseDocument(data []byte) (*document, error) {
	start, err := lastStartXref(data)
	if err != nil {
		return nil, err
	}
	doc := &document{data: data, startxref: start, offsets: map[int]int{}}

	seen := map[int]bool{}
	offset := start
	first := true
	for {
		if seen[offset] {
			return nil, errors.New("acroform: xref /Prev loop")
		}
		seen[offset] = true

		trailer, err := doc.readXrefSection(offset)
		if err != nil {
			return nil, err
		}
		if first {
			if err := doc.readTrailer(trailer); err != nil {
				return nil, err
			}
			first = false
		}
		prev := prevRe.FindSubmatch(trailer)
		if prev == nil {
			break
		}
		offset, err = strconv.Atoi(string(prev[1]))
		if err != nil {
			return nil, fmt.Errorf("acroform: bad /Prev: %w", err)
		}
	}
	return doc, nil
}

func lastStartXref(data []byte) (int, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return 0, errors.New("acroform: startxref not found")
	}
	rest := bytes.Fields(data[idx+len("startxref"):])
	if len(rest) == 0 {
		return 0, errors.New("acroform: startxref offset missing")
	}
	off, err := strconv.Atoi(string(rest[0]))
	if err != nil || off < 0 || off >= len(data) {
		return 0, fmt.Errorf("acroform: invalid startxref offset %q", rest[0])
	}
	return off, nil
}

// readXrefSection records in-use entries not already overridden by a newer
// section and returns the raw trailer dictionary.
func (d *document) readXrefSection(offset int) ([]byte, error) {
	if offset < 0 || offset >= len(d.data) {
		return nil, fmt.Errorf("acroform: xref offset %d out of range", offset)
	}
	section := d.data[offset:]
	trailerAt := bytes.Index(section, []byte("trailer"))
	if !bytes.HasPrefix(bytes.TrimLeft(section, " \r\n\t"), []byte("xref")) || trailerAt < 0 {
		return nil, errors.New("acroform: only classic xref tables are supported")
	}

	lines := bytes.FieldsFunc(section[:trailerAt], func(r rune) bool { return r == '\n' || r == '\r' })
	var (
		next      int
		remaining int
	)
	for _, line := range lines[1:] {
		fields := bytes.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case remaining == 0 && len(fields) == 2:
			start, err1 := strconv.Atoi(string(fields[0]))
			count, err2 := strconv.Atoi(string(fields[1]))
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("acroform: bad xref subsection %q", line)
			}
			next, remaining = start, count
		case remaining > 0 && len(fields) == 3:
			if string(fields[2]) == "n" {
				if _, known := d.offsets[next]; !known {
					off, err := strconv.Atoi(string(fields[0]))
					if err != nil {
						return nil, fmt.Errorf("acroform: bad xref entry %q", line)
					}
					d.offsets[next] = off
				}
			}
			next++
			remaining--
		default:
			return nil, fmt.Errorf("acroform: unexpected xref line %q", line)
		}
	}

	trailer := section[trailerAt:]
	if end := bytes.Index(trailer, []byte("startxref")); end >= 0 {
		trailer = trailer[:end]
	}
	return trailer, nil
}

func (d *document) readTrailer(trailer []byte) error {
	size := sizeRe.FindSubmatch(trailer)
	if size == nil {
		return errors.New("acroform: trailer has no /Size")
	}
	d.size, _ = strconv.Atoi(string(size[1]))

	root := rootRe.FindSubmatch(trailer)
	if root == nil {
		return errors.New("acroform: trailer has no /Root")
	}
	d.root = parseRef(root[1], root[2])

	if info := infoRe.FindSubmatch(trailer); info != nil {
		ref := parseRef(info[1], info[2])
		d.info = &ref
	}
	return nil
}

// object returns the body between "obj" and "endobj" for num.
func (d *document) object(num int) ([]byte, error) {
	off, ok := d.offsets[num]
	if !ok {
		return nil, fmt.Errorf("acroform: object %d not in xref", num)
	}
	if off < 0 || off >= len(d.data) {
		return nil, fmt.Errorf("acroform: object %d offset %d out of range", num, off)
	}
	chunk := d.data[off:]
	header := objHeaderRe.FindSubmatchIndex(chunk)
	if header == nil {
		return nil, fmt.Errorf("acroform: object %d header not found at %d", num, off)
	}
	if got, _ := strconv.Atoi(string(chunk[header[2]:header[3]])); got != num {
		return nil, fmt.Errorf("acroform: xref points object %d at object %d", num, got)
	}
	body := chunk[header[1]:]
	end := bytes.Index(body, []byte("endobj"))
	if end < 0 {
		return nil, fmt.Errorf("acroform: object %d is not terminated", num)
	}
	return bytes.TrimSpace(body[:end]), nil
}

// pages walks the page tree from the catalog and returns page references in
// document order.
func (d *document) pages() ([]Ref, error) {
	catalog, err := d.object(d.root.Num)
	if err != nil {
		return nil, err
	}
	match := pagesRe.FindSubmatch(catalog)
	if match == nil {
		return nil, errors.New("acroform: catalog has no /Pages")
	}
	var out []Ref
	if err := d.collectPages(parseRef(match[1], match[2]), &out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *document) collectPages(node Ref, out *[]Ref, depth int) error {
	if depth > 32 {
		return errors.New("acroform: page tree too deep")
	}
	body, err := d.object(node.Num)
	if err != nil {
		return err
	}
	if !typePagesRe.Match(body) {
		*out = append(*out, node)
		return nil
	}
	kids := kidsRe.FindSubmatch(body)
	if kids == nil {
		return fmt.Errorf("acroform: pages node %d has no /Kids", node.Num)
	}
	for _, m := range refRe.FindAllSubmatch(kids[1], -1) {
		if err := d.collectPages(parseRef(m[1], m[2]), out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func parseRef(num, gen []byte) Ref {
	n, _ := strconv.Atoi(string(num))
	g, _ := strconv.Atoi(string(gen))
	return Ref{Num: n, Gen: g}
}
