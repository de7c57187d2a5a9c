package templates

// Project describes the document being stamped.
type Project struct {
	Name        string
	Title       string
	Author      string
	Affiliation string
}

// PDFCaption is the link text for the PDF download link.
const PDFCaption = "PDF version"

// NewData merges the revision substitutions with the project fields into the
// template data map. Substitution keys win over project keys.
func NewData(subs map[string]string, p Project) map[string]any {
	title := p.Title
	if title == "" {
		title = p.Name
	}
	data := map[string]any{
		"project":     p.Name,
		"title":       title,
		"author":      p.Author,
		"affiliation": p.Affiliation,
		"pdf_caption": PDFCaption,
	}
	for k, v := range subs {
		data[k] = v
	}
	return data
}
