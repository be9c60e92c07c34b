package exporter

import (
	"github.com/HolyKasra/NezamPezeshki-Crawler/internal/scraper"
)

// Exporter represents a service for writing scraped records to a tabular
// output
type Exporter interface {
	// Export writes the records in column order
	Export(records []scraper.DoctorRecord) error
}

// DedupeByNezam drops records whose registration number was already seen,
// keeping the first occurrence and the overall order. Records without a
// registration number are all kept; an empty key says nothing about the
// doctor's identity.
func DedupeByNezam(records []scraper.DoctorRecord) []scraper.DoctorRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]scraper.DoctorRecord, 0, len(records))

	for _, record := range records {
		nezam := record["Nezam"]
		if nezam != "" {
			if _, dup := seen[nezam]; dup {
				continue
			}
			seen[nezam] = struct{}{}
		}
		unique = append(unique, record)
	}

	return unique
}
