package delivery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gobuffalo/packr"
)

const slateTemplateName = "slate.txt"

// slateData is what the template sees. Block is the machine readable
// line the slate embeds in its ASCII encoded form.
type slateData struct {
	ShotRecord
	Block string
}

// Renderer fills delivery slates from shot records. Templates are
// embedded in the binary; a template dir can override them per studio.
type Renderer struct {
	tmpl *template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"ascii": EncodeASCII,
	}
}

// NewRenderer loads the embedded slate template. If dir is non empty
// and contains slate.txt, it wins over the embedded one.
func NewRenderer(dir string) (*Renderer, error) {
	text := ""

	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, slateTemplateName))
		if err == nil {
			text = string(data)
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if text == "" {
		box := packr.NewBox("../../templates/delivery")
		s, err := box.FindString(slateTemplateName)
		if err != nil {
			return nil, err
		}
		text = s
	}

	tmpl, err := template.New(slateTemplateName).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl}, nil
}

// RenderSlate renders one shot record into the slate text.
func (r *Renderer) RenderSlate(record ShotRecord) (string, error) {
	data := slateData{
		ShotRecord: record,
		Block:      BlockLine(record),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// RenderAll renders every record, in order.
func (r *Renderer) RenderAll(records []ShotRecord) ([]string, error) {
	slates := make([]string, 0, len(records))
	for _, record := range records {
		slate, err := r.RenderSlate(record)
		if err != nil {
			return nil, err
		}
		slates = append(slates, slate)
	}

	return slates, nil
}

// BlockLine builds the machine readable block line for a record.
func BlockLine(record ShotRecord) string {
	version := record.Version
	if version == "" {
		version = "v001"
	}
	return fmt.Sprintf("%s_%s_%s", strings.ToUpper(record.Shot), version, record.Date)
}
