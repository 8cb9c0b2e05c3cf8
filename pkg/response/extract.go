package response

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// ErrNotPDF reports an upload that is not a readable PDF document.
var ErrNotPDF = errors.New("response: not a PDF document")

const applicationPrefix = "Application ID: "

var disableConfigDir sync.Once

// Form is the data recovered from a filled-in questionnaire.
type Form struct {
	// ApplicationID comes from the document subject; empty when the upload
	// was not produced by this service.
	ApplicationID string
	// Fields maps text field names to their values. Empty values are kept.
	Fields map[string]string
}

// Names returns the field names in sorted order.
func (f Form) Names() []string {
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Answered returns the non-blank answers.
func (f Form) Answered() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for name, value := range f.Fields {
		if strings.TrimSpace(value) != "" {
			out[name] = value
		}
	}
	return out
}

// Extract reads the text fields and subject of a PDF.
func Extract(data []byte) (Form, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("%PDF-")) {
		return Form{}, ErrNotPDF
	}

	disableConfigDir.Do(func() {
		model.ConfigPath = "disable"
	})
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return Form{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	form := Form{Fields: map[string]string{}}
	form.ApplicationID = subjectApplicationID(ctx)

	fields, err := formFields(ctx)
	if err != nil {
		return Form{}, err
	}
	for _, obj := range fields {
		collectField(ctx, obj, "", form.Fields, 0)
	}
	return form, nil
}

func subjectApplicationID(ctx *model.Context) string {
	if ctx.Info == nil {
		return ""
	}
	info, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || info == nil {
		return ""
	}
	obj, found := info.Find("Subject")
	if !found {
		return ""
	}
	subject, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	id, ok := strings.CutPrefix(strings.TrimSpace(subject), applicationPrefix)
	if !ok || questionnaire.ValidateApplicationID(id) != nil {
		return ""
	}
	return id
}

func formFields(ctx *model.Context) (types.Array, error) {
	root, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("response: read catalog: %w", err)
	}
	acroFormObj, found := root.Find("AcroForm")
	if !found {
		return nil, nil
	}
	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("response: read AcroForm: %w", err)
	}
	if acroForm == nil {
		return nil, nil
	}
	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return nil, nil
	}
	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("response: read AcroForm fields: %w", err)
	}
	return fields, nil
}

// collectField records text fields, descending into /Kids so fully
// qualified names are joined with ".".
func collectField(ctx *model.Context, obj types.Object, parent string, out map[string]string, depth int) {
	if depth > 16 {
		return
	}
	dict, err := ctx.DereferenceDict(obj)
	if err != nil || dict == nil {
		return
	}

	name := parent
	if nameObj, found := dict.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil && partial != "" {
			if name != "" {
				name += "."
			}
			name += partial
		}
	}

	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil && len(kids) > 0 {
			for _, kid := range kids {
				collectField(ctx, kid, name, out, depth+1)
			}
			if _, hasValue := dict.Find("V"); !hasValue {
				return
			}
		}
	}

	if name == "" || !isTextField(ctx, dict) {
		return
	}
	value := ""
	if valueObj, found := dict.Find("V"); found {
		if v, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
			value = v
		}
	}
	if _, seen := out[name]; !seen || value != "" {
		out[name] = value
	}
}

func isTextField(ctx *model.Context, dict types.Dict) bool {
	ftObj, found := dict.Find("FT")
	if !found {
		return false
	}
	ft, err := ctx.DereferenceName(ftObj, model.V10, nil)
	return err == nil && string(ft) == "Tx"
}
