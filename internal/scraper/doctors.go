package scraper

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/HolyKasra/NezamPezeshki-Crawler/helpers"
	"github.com/HolyKasra/NezamPezeshki-Crawler/logger"
	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

var pageCountPattern = regexp.MustCompile(`[0-9]+`)

// Pagination buttons may render Persian numerals
var persianDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// resultPageURLs derives the full list of result page URLs from the round
// page buttons. All pages share the first button's URL up to its last path
// segment; the page count is the first number in the last button's text.
// No buttons means the rendered page is the only page, signalled by an
// empty slice.
func resultPageURLs(doc *goquery.Document, baseURL string, sel Selectors) ([]string, error) {
	buttons := doc.Find(sel.DoctorPages)
	if buttons.Length() == 0 {
		return nil, nil
	}

	firstHref, _ := buttons.First().Attr("href")
	prefix := "/"
	if idx := strings.LastIndex(firstHref, "/"); idx >= 0 {
		prefix = firstHref[:idx+1]
	}

	lastText := persianDigits.Replace(buttons.Last().Text())
	match := pageCountPattern.FindString(lastText)
	if match == "" {
		return nil, errs.NewParsing("doctors", "no page count in pagination button: "+lastText, nil)
	}
	numPages, err := strconv.Atoi(match)
	if err != nil {
		return nil, errs.NewParsing("doctors", "invalid page count: "+match, err)
	}

	urls := make([]string, 0, numPages)
	for page := 1; page <= numPages; page++ {
		urls = append(urls, baseURL+prefix+strconv.Itoa(page))
	}
	return urls, nil
}

// parseDoctorRows extracts one DoctorRecord per result row from a fetched
// page body
func parseDoctorRows(r io.Reader, nav NavigationContext, sel Selectors) ([]DoctorRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errs.NewParsing("doctors", "failed to parse result page", err)
	}
	return doctorRowsFromDoc(doc, nav, sel), nil
}

// doctorRowsFromDoc reads the first result table on the page. Zero rows is a
// valid empty result, and placeholder rows without the full cell set are
// skipped.
func doctorRowsFromDoc(doc *goquery.Document, nav NavigationContext, sel Selectors) []DoctorRecord {
	records := make([]DoctorRecord, 0)

	doc.Find(sel.DoctorTable).First().Find(sel.DoctorRows).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			logger.ForScraper().Debug().
				Int("cells", cells.Length()).
				Msg("Skipping row without a full cell set")
			return
		}

		fullname := helpers.CleanWhitespace(cells.Eq(1).Find("a").First().Text())
		nezam := strings.TrimSpace(cells.Eq(2).Find("a").First().Text())
		specialty, _ := helpers.GetSplitPart(strings.TrimSpace(cells.Eq(3).Find("a").First().Text()), "|", 0)
		workProvince, workCity := splitLocality(strings.TrimSpace(cells.Eq(4).Find("a").First().Text()))
		membership := strings.TrimSpace(cells.Eq(5).Find("a").First().Text())

		records = append(records, DoctorRecord{
			"Fullname":       fullname,
			"Nezam":          nezam,
			"Specialty":      specialty,
			"City":           nav.City,
			"AuthorizedCity": nav.City,
			"WorkCity":       workCity,
			"WorkProvince":   workProvince,
			"Membership":     membership,
		})
	})

	return records
}

// splitLocality splits a combined "Province-City" cell. Anything that does
// not split into exactly two parts is recorded as unknown on both sides.
func splitLocality(combined string) (province, city string) {
	parts := strings.Split(combined, "-")
	if len(parts) != 2 {
		return UnknownLocality, UnknownLocality
	}
	return parts[0], parts[1]
}

// collectDoctors gathers every result page reachable from a specialty link
// and parses the rows in page order. When page buttons are present the
// listing is re-fetched page by page over plain HTTP, so the rendered page
// itself is never parsed twice.
func (s *Scraper) collectDoctors(specialtyURL string, nav NavigationContext) ([]DoctorRecord, error) {
	doc, err := s.navigate(specialtyURL, "doctors")
	if err != nil {
		return nil, err
	}

	pageURLs, err := resultPageURLs(doc, s.cfg.BaseURL, s.selectors)
	if err != nil {
		return nil, err
	}

	if len(pageURLs) == 0 {
		return doctorRowsFromDoc(doc, nav, s.selectors), nil
	}

	records := make([]DoctorRecord, 0)
	for _, pageURL := range pageURLs {
		body, err := s.fetch(pageURL)
		if err != nil {
			return nil, errs.NewNetwork("doctors", "failed to fetch result page "+pageURL, err)
		}
		pageRecords, err := parseDoctorRows(body, nav, s.selectors)
		if err != nil {
			return nil, err
		}
		records = append(records, pageRecords...)
	}
	return records, nil
}
