package source

import (
	"github.com/gen2brain/go-fitz"
)

// Page is the raw material for one imported slide
type Page struct {
	Index     int
	Text      string // extracted text, paragraphs separated by blank lines
	ImagePath string // set for image sources
}

type Source interface {
	PageCount() int
	Page(index int) (Page, error)
	Close() error
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

// Page extracts the text of one page. Each call opens its own document so
// pages can be read from several goroutines.
func (f *FitzPDFSource) Page(index int) (Page, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return Page{}, err
	}
	defer workerDoc.Close()

	text, err := workerDoc.Text(index)
	if err != nil {
		return Page{}, err
	}
	return Page{Index: index, Text: text}, nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
