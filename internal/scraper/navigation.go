package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

// optionsFromDoc reads the option links from one directory table column.
// Anchors without an href are skipped; duplicate labels keep the first URL.
func optionsFromDoc(doc *goquery.Document, column int, baseURL string, sel Selectors) *OptionSet {
	set := NewOptionSet()
	doc.Find(fmt.Sprintf(sel.DirectoryRow, column)).Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists {
			return
		}
		label := strings.TrimSpace(a.Text())
		if label == "" {
			return
		}
		set.Add(label, baseURL+href)
	})
	return set
}

// hasMorePages reports whether the specialty table can page forward. A
// missing pagination control or a disabled last item means the final page
// is showing.
func hasMorePages(doc *goquery.Document, sel Selectors) bool {
	last := doc.Find(sel.PaginationState).First()
	if last.Length() == 0 {
		return false
	}
	return !last.HasClass("disabled")
}

// Provinces reads the province options from the directory root
func (s *Scraper) Provinces() (*OptionSet, error) {
	return s.readDirectory(s.cfg.ProvincesURL(), provinceColumn, "provinces")
}

// Cities reads the city options listed for a province
func (s *Scraper) Cities(provinceURL string) (*OptionSet, error) {
	return s.readDirectory(provinceURL, cityColumn, "cities")
}

// SpecialtiesUntil reads the specialty options for a city, paging the table
// forward until wanted appears or no pages remain. Labels merged from later
// pages never overwrite earlier ones.
func (s *Scraper) SpecialtiesUntil(cityURL, wanted string) (*OptionSet, error) {
	doc, err := s.navigate(cityURL, "specialties")
	if err != nil {
		return nil, err
	}

	set := optionsFromDoc(doc, specialtyColumn, s.cfg.BaseURL, s.selectors)
	for !set.Has(wanted) && hasMorePages(doc, s.selectors) {
		if err := s.session.ClickNext(s.selectors.NextButton); err != nil {
			return nil, err
		}
		doc, err = s.currentDocument("specialties")
		if err != nil {
			return nil, err
		}
		set.Merge(optionsFromDoc(doc, specialtyColumn, s.cfg.BaseURL, s.selectors))
	}

	return set, nil
}

// readDirectory loads a directory page and reads one option column from it
func (s *Scraper) readDirectory(url string, column int, stage string) (*OptionSet, error) {
	doc, err := s.navigate(url, stage)
	if err != nil {
		return nil, err
	}
	return optionsFromDoc(doc, column, s.cfg.BaseURL, s.selectors), nil
}

// navigate loads a URL in the session and parses the rendered markup
func (s *Scraper) navigate(url string, stage string) (*goquery.Document, error) {
	if err := s.session.Navigate(url); err != nil {
		return nil, err
	}
	return s.currentDocument(stage)
}

// currentDocument parses whatever the session is currently showing
func (s *Scraper) currentDocument(stage string) (*goquery.Document, error) {
	html, err := s.session.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errs.NewParsing(stage, "failed to parse page markup", err)
	}
	return doc, nil
}
