package scraper

import (
	"io"

	"github.com/HolyKasra/NezamPezeshki-Crawler/config"
	"github.com/HolyKasra/NezamPezeshki-Crawler/helpers"
	"github.com/HolyKasra/NezamPezeshki-Crawler/logger"
	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

// FetchFunc fetches a result page over plain HTTP and returns its UTF-8 body
type FetchFunc func(url string) (io.Reader, error)

// Scraper walks the province, city, specialty hierarchy of the member
// directory and parses the doctor listings it reaches. Hierarchy navigation
// runs in the browser session; the static result pages are fetched over
// plain HTTP. Execution is strictly sequential and the first error ends the
// crawl.
type Scraper struct {
	cfg       *config.Config
	session   Session
	selectors Selectors
	fetch     FetchFunc
}

// New creates a scraper on top of an open browser session. The session stays
// owned by the caller.
func New(cfg *config.Config, session Session) *Scraper {
	return &Scraper{
		cfg:       cfg,
		session:   session,
		selectors: DefaultSelectors(),
		fetch:     helpers.FetchWithRandomHeaders,
	}
}

// Scrape collects every doctor record for the specialty across all cities of
// the province. Cities that do not offer the specialty are skipped. Records
// keep the directory's city and page order.
func (s *Scraper) Scrape(provinceName, specialtyName string) ([]DoctorRecord, error) {
	log := logger.ForScraper()
	log.Info().
		Str("province", provinceName).
		Str("specialty", specialtyName).
		Msg("Starting scrape")

	provinces, err := s.Provinces()
	if err != nil {
		return nil, err
	}

	provinceURL, ok := provinces.Get(provinceName)
	if !ok {
		return nil, errs.NewNavigation("provinces", "province not listed in directory: "+provinceName, nil)
	}

	cities, err := s.Cities(provinceURL)
	if err != nil {
		return nil, err
	}

	nav := NavigationContext{Province: provinceName, Specialty: specialtyName}
	records := make([]DoctorRecord, 0)

	for _, city := range cities.Options() {
		nav.City = city.Label
		log.Info().Str("city", city.Label).Msg("Processing city")

		specialties, err := s.SpecialtiesUntil(city.Value, specialtyName)
		if err != nil {
			return nil, err
		}

		specialtyURL, ok := specialties.Get(specialtyName)
		if !ok {
			log.Info().Str("city", city.Label).Msg("Specialty not offered, skipping city")
			continue
		}

		cityRecords, err := s.collectDoctors(specialtyURL, nav)
		if err != nil {
			return nil, err
		}
		records = append(records, cityRecords...)
	}

	log.Info().Int("records", len(records)).Msg("Scrape complete")
	return records, nil
}
