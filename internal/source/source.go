package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is used when rasterizing PDF pages into image slots.
const DefaultDPI = 144

// Source is an ordered set of images that can fill layout slots.
type Source interface {
	Count() int
	Load(index int) (image.Image, error)
	Close() error
}

// FitzPDFSource exposes every page of a PDF as an image.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	DPI  int
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия PDF %s: %w", path, err)
	}
	return &FitzPDFSource{doc: doc, path: path, DPI: DefaultDPI}, nil
}

func (f *FitzPDFSource) Count() int {
	return f.doc.NumPage()
}

// Load renders one page. A separate document handle is opened per call so
// pages can be rendered from several goroutines.
func (f *FitzPDFSource) Load(index int) (image.Image, error) {
	if index < 0 || index >= f.Count() {
		return nil, fmt.Errorf("страница %d вне диапазона", index)
	}
	doc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(index, float64(f.DPI))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
