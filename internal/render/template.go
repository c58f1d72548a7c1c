package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"
)

// DateLayout is the DD/MM/YYYY layout printed on certificates.
const DateLayout = "02/01/2006"

//go:embed templates/certificate.html templates/medal.png
var assets embed.FS

// Data is the set of values substituted into the certificate template.
type Data struct {
	ID    string
	Name  string
	Grade string
	Date  string
	Medal template.URL // inline data URI of the decorative image
}

// Template renders certificate HTML from the embedded template and image.
type Template struct {
	tmpl    *template.Template
	medal   template.URL
	nowFunc func() time.Time
}

// NewTemplate parses the embedded certificate template and loads the medal image.
func NewTemplate() (*Template, error) {
	tmpl, err := template.ParseFS(assets, "templates/certificate.html")
	if err != nil {
		return nil, fmt.Errorf("parse certificate template: %w", err)
	}
	png, err := assets.ReadFile("templates/medal.png")
	if err != nil {
		return nil, fmt.Errorf("read medal image: %w", err)
	}
	return &Template{
		tmpl:    tmpl,
		medal:   template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		nowFunc: time.Now,
	}, nil
}

// Execute produces the certificate HTML for a recipient, dated today.
func (t *Template) Execute(id, name, grade string) (string, error) {
	data := Data{
		ID:    id,
		Name:  name,
		Grade: grade,
		Date:  t.nowFunc().Format(DateLayout),
		Medal: t.medal,
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute certificate template: %w", err)
	}
	return buf.String(), nil
}
