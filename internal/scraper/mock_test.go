package scraper

import (
	"errors"
)

// MockSession is a scripted Session for tests. Navigate serves pages by URL
// and ClickNext serves queued page states in order. No browser is launched.
type MockSession struct {
	pages      map[string]string
	clickQueue []string
	clicks     int
	current    string
	navigated  []string
	closed     bool
}

// Ensure MockSession implements Session
var _ Session = (*MockSession)(nil)

func NewMockSession(pages map[string]string) *MockSession {
	return &MockSession{
		pages:     pages,
		navigated: make([]string, 0),
	}
}

func (m *MockSession) Navigate(url string) error {
	html, ok := m.pages[url]
	if !ok {
		return errors.New("no page scripted for " + url)
	}
	m.current = html
	m.navigated = append(m.navigated, url)
	return nil
}

func (m *MockSession) HTML() (string, error) {
	return m.current, nil
}

func (m *MockSession) ClickNext(selector string) error {
	if m.clicks >= len(m.clickQueue) {
		return errors.New("no more scripted pages for " + selector)
	}
	m.current = m.clickQueue[m.clicks]
	m.clicks++
	return nil
}

func (m *MockSession) Close() error {
	m.closed = true
	return nil
}
