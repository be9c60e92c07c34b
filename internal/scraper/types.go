package scraper

// DoctorRecord represents one parsed directory row as a flat field mapping.
// Values may be empty strings when a cell carries no anchor text.
type DoctorRecord map[string]string

// RecordColumns is the column order records are exported in
var RecordColumns = []string{
	"Fullname",
	"Nezam",
	"Specialty",
	"City",
	"AuthorizedCity",
	"WorkCity",
	"WorkProvince",
	"Membership",
}

// UnknownLocality is recorded for both work fields when a combined
// locality cell does not split into a province and a city
const UnknownLocality = "نامشخص"

// DropdownOption is a selectable (label, value) pair read from a directory
// table column. The value is the absolute URL the label links to.
type DropdownOption struct {
	Label string
	Value string
}

// NavigationContext is the (province, city, specialty) selection the crawl
// is currently positioned on
type NavigationContext struct {
	Province  string
	City      string
	Specialty string
}

// OptionSet holds dropdown options in page order with label lookup
type OptionSet struct {
	options []DropdownOption
	byLabel map[string]string
}

// NewOptionSet creates an empty option set
func NewOptionSet() *OptionSet {
	return &OptionSet{
		options: make([]DropdownOption, 0),
		byLabel: make(map[string]string),
	}
}

// Add appends an option. A label seen before keeps its first value and
// Add reports false.
func (s *OptionSet) Add(label, value string) bool {
	if _, exists := s.byLabel[label]; exists {
		return false
	}
	s.byLabel[label] = value
	s.options = append(s.options, DropdownOption{Label: label, Value: value})
	return true
}

// Get returns the value for a label
func (s *OptionSet) Get(label string) (string, bool) {
	value, ok := s.byLabel[label]
	return value, ok
}

// Has reports whether the label is present
func (s *OptionSet) Has(label string) bool {
	_, ok := s.byLabel[label]
	return ok
}

// Options returns the options in the order they were read
func (s *OptionSet) Options() []DropdownOption {
	return s.options
}

// Len returns the number of distinct labels
func (s *OptionSet) Len() int {
	return len(s.options)
}

// Merge adds every option from other, keeping existing labels, and returns
// the number of new labels added
func (s *OptionSet) Merge(other *OptionSet) int {
	added := 0
	for _, opt := range other.options {
		if s.Add(opt.Label, opt.Value) {
			added++
		}
	}
	return added
}

// Selectors contains CSS selectors for the directory markup
type Selectors struct {
	// DirectoryRow locates option links in a directory table column; the
	// column number is substituted for %d
	DirectoryRow string

	// PaginationState is the last item of the specialty table's pagination
	// control; class "disabled" on it means no further pages
	PaginationState string

	// NextButton advances the specialty table one page
	NextButton string

	// DoctorPages are the round page buttons above a result list
	DoctorPages string

	// DoctorTable and DoctorRows locate the result rows; only the first
	// matching table is read
	DoctorTable string
	DoctorRows  string
}

// Directory table columns holding the option links at each hierarchy level
const (
	provinceColumn  = 3
	cityColumn      = 2
	specialtyColumn = 2
)

// DefaultSelectors matches the markup of membersearch.irimc.org
func DefaultSelectors() Selectors {
	return Selectors{
		DirectoryRow:    "tr[role='row'] td:nth-child(%d) a",
		PaginationState: "ul.pagination li:last-child",
		NextButton:      "#DataTables_Table_0_next > a",
		DoctorPages:     "div.col-lg-12.col-md-12 a.btn.btn-sm.btn-round",
		DoctorTable:     "tbody",
		DoctorRows:      "tr",
	}
}
