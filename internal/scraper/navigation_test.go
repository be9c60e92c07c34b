package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"

	"github.com/HolyKasra/NezamPezeshki-Crawler/config"
)

const testBaseURL = "https://example.test/"

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:         testBaseURL,
		PageLoadTimeout: time.Second,
	}
}

func docFromString(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

const provincesHTML = `<html><body>
<table id="DataTables_Table_0">
<tbody>
<tr role="row"><td>1</td><td>201</td><td><a href="directory/1/مازندران">مازندران</a></td></tr>
<tr role="row"><td>2</td><td>344</td><td><a href="directory/2/تهران">تهران</a></td></tr>
</tbody>
</table>
</body></html>`

const citiesHTML = `<html><body>
<table id="DataTables_Table_0">
<tbody>
<tr role="row"><td>1</td><td><a href="directory/city/101/ساری">ساری</a></td><td>مازندران</td></tr>
<tr role="row"><td>2</td><td><a href="directory/city/102/بابل">بابل</a></td><td>مازندران</td></tr>
</tbody>
</table>
</body></html>`

func TestOptionsFromDocument(t *testing.T) {
	doc := docFromString(t, provincesHTML)

	// Column 3 holds the province links
	provinces := optionsFromDoc(doc, 3, testBaseURL, DefaultSelectors())
	assert.Equal(t, 2, provinces.Len())

	url, ok := provinces.Get("مازندران")
	assert.True(t, ok)
	assert.Equal(t, testBaseURL+"directory/1/مازندران", url)

	url, ok = provinces.Get("تهران")
	assert.True(t, ok)
	assert.Equal(t, testBaseURL+"directory/2/تهران", url)

	// Column 2 carries plain counts without anchors
	counts := optionsFromDoc(doc, 2, testBaseURL, DefaultSelectors())
	assert.Equal(t, 0, counts.Len())
}

func TestOptionsDuplicateLabelKeepsFirst(t *testing.T) {
	html := `<table><tbody>
<tr role="row"><td>1</td><td><a href="first">ساری</a></td></tr>
<tr role="row"><td>2</td><td><a href="second">ساری</a></td></tr>
</tbody></table>`
	doc := docFromString(t, html)

	set := optionsFromDoc(doc, 2, testBaseURL, DefaultSelectors())
	assert.Equal(t, 1, set.Len())

	url, ok := set.Get("ساری")
	assert.True(t, ok)
	assert.Equal(t, testBaseURL+"first", url)
}

func TestOptionSetMerge(t *testing.T) {
	first := NewOptionSet()
	first.Add("قلب", "url-a")

	second := NewOptionSet()
	second.Add("قلب", "url-b")
	second.Add("پوست", "url-c")

	added := first.Merge(second)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, first.Len())

	// The first occurrence of a label wins
	url, _ := first.Get("قلب")
	assert.Equal(t, "url-a", url)
}

func TestHasMorePages(t *testing.T) {
	enabled := docFromString(t, `<ul class="pagination"><li class="previous disabled"></li><li class="next"><a href="#">بعدی</a></li></ul>`)
	assert.True(t, hasMorePages(enabled, DefaultSelectors()))

	disabled := docFromString(t, `<ul class="pagination"><li class="previous"></li><li class="next disabled"><a href="#">بعدی</a></li></ul>`)
	assert.False(t, hasMorePages(disabled, DefaultSelectors()))

	missing := docFromString(t, `<div>no pagination control</div>`)
	assert.False(t, hasMorePages(missing, DefaultSelectors()))
}

func TestProvincesAndCities(t *testing.T) {
	pages := make(map[string]string)
	pages[testBaseURL+"directory"] = provincesHTML
	pages[testBaseURL+"directory/1/مازندران"] = citiesHTML
	session := NewMockSession(pages)
	s := New(testConfig(), session)

	provinces, err := s.Provinces()
	assert.NoError(t, err)
	assert.Equal(t, 2, provinces.Len())

	provinceURL, ok := provinces.Get("مازندران")
	assert.True(t, ok)

	cities, err := s.Cities(provinceURL)
	assert.NoError(t, err)
	assert.Equal(t, 2, cities.Len())
	assert.Equal(t, []string{
		testBaseURL + "directory",
		testBaseURL + "directory/1/مازندران",
	}, session.navigated)
}

const specialtiesFirstPageHTML = `<html><body>
<table id="DataTables_Table_0">
<tbody>
<tr role="row"><td>1</td><td><a href="directory/sp/1/قلب">قلب</a></td></tr>
<tr role="row"><td>2</td><td><a href="directory/sp/2/پوست">پوست</a></td></tr>
</tbody>
</table>
<ul class="pagination"><li class="previous disabled"></li><li class="active"></li><li class="next" id="DataTables_Table_0_next"><a href="#">بعدی</a></li></ul>
</body></html>`

const specialtiesSecondPageHTML = `<html><body>
<table id="DataTables_Table_0">
<tbody>
<tr role="row"><td>1</td><td><a href="directory/sp/3/رادیولوژی">رادیولوژی</a></td></tr>
<tr role="row"><td>2</td><td><a href="directory/sp/9/قلب">قلب</a></td></tr>
</tbody>
</table>
<ul class="pagination"><li class="previous"></li><li class="active"></li><li class="next disabled" id="DataTables_Table_0_next"><a href="#">بعدی</a></li></ul>
</body></html>`

const specialtiesOnlyPageHTML = `<html><body>
<table id="DataTables_Table_0">
<tbody>
<tr role="row"><td>1</td><td><a href="directory/sp/1/قلب">قلب</a></td></tr>
</tbody>
</table>
<ul class="pagination"><li class="previous"></li><li class="next disabled"><a href="#">بعدی</a></li></ul>
</body></html>`

func TestSpecialtiesFoundOnFirstPage(t *testing.T) {
	cityURL := testBaseURL + "directory/city/101/ساری"
	session := NewMockSession(map[string]string{cityURL: specialtiesFirstPageHTML})
	s := New(testConfig(), session)

	specialties, err := s.SpecialtiesUntil(cityURL, "قلب")
	assert.NoError(t, err)
	assert.True(t, specialties.Has("قلب"))
	assert.Equal(t, 0, session.clicks, "No paging needed when the specialty is on the first page")
}

func TestSpecialtiesFoundAfterPaging(t *testing.T) {
	cityURL := testBaseURL + "directory/city/101/ساری"
	session := NewMockSession(map[string]string{cityURL: specialtiesFirstPageHTML})
	session.clickQueue = []string{specialtiesSecondPageHTML}
	s := New(testConfig(), session)

	specialties, err := s.SpecialtiesUntil(cityURL, "رادیولوژی")
	assert.NoError(t, err)
	assert.Equal(t, 1, session.clicks)
	assert.True(t, specialties.Has("رادیولوژی"))

	url, ok := specialties.Get("رادیولوژی")
	assert.True(t, ok)
	assert.Equal(t, testBaseURL+"directory/sp/3/رادیولوژی", url)

	// The label seen on the first page keeps its URL after merging
	url, ok = specialties.Get("قلب")
	assert.True(t, ok)
	assert.Equal(t, testBaseURL+"directory/sp/1/قلب", url)
}

func TestSpecialtiesExhaustsPages(t *testing.T) {
	cityURL := testBaseURL + "directory/city/101/ساری"
	session := NewMockSession(map[string]string{cityURL: specialtiesFirstPageHTML})
	session.clickQueue = []string{specialtiesSecondPageHTML}
	s := New(testConfig(), session)

	specialties, err := s.SpecialtiesUntil(cityURL, "ارتوپدی")
	assert.NoError(t, err)
	assert.Equal(t, 1, session.clicks, "Paging stops on the disabled control")
	assert.False(t, specialties.Has("ارتوپدی"))
	assert.Equal(t, 3, specialties.Len())
}

func TestSpecialtiesStopsWhenPaginationDisabled(t *testing.T) {
	cityURL := testBaseURL + "directory/city/102/بابل"
	session := NewMockSession(map[string]string{cityURL: specialtiesOnlyPageHTML})
	s := New(testConfig(), session)

	specialties, err := s.SpecialtiesUntil(cityURL, "رادیولوژی")
	assert.NoError(t, err)
	assert.Equal(t, 0, session.clicks)
	assert.False(t, specialties.Has("رادیولوژی"))
}
