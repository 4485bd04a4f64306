package deeds

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Session is the shared browser-automation handle. It is acquired once per
// run, used sequentially for every lookup, and released exactly once via
// Close regardless of how the run ends.
type Session struct {
	headless    bool
	waitTimeout time.Duration

	launcher *launcher.Launcher
	browser  *rod.Browser
	opened   bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHeadless controls whether the browser runs headless (default true).
func WithHeadless(headless bool) SessionOption {
	return func(s *Session) {
		s.headless = headless
	}
}

// WithWaitTimeout bounds how long each page interaction (navigation, element
// lookup) may take (default 10s).
func WithWaitTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.waitTimeout = d
		}
	}
}

// NewSession creates an unopened Session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		headless:    true,
		waitTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open launches the browser and connects to it. Calling Open on an already
// open session is an error.
func (s *Session) Open(ctx context.Context) error {
	if s.opened {
		return eris.New("deeds: session already open")
	}

	l := launcher.New().Headless(s.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return eris.Wrap(err, "deeds: launch browser")
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return eris.Wrap(err, "deeds: connect browser")
	}

	s.launcher = l
	s.browser = browser
	s.opened = true
	zap.L().Debug("deeds: browser session opened", zap.Bool("headless", s.headless))
	return nil
}

// Close shuts the browser down. Safe to call on an unopened or already
// closed session; only the first close does any work.
func (s *Session) Close() error {
	if !s.opened {
		return nil
	}
	s.opened = false

	err := s.browser.Close()
	s.launcher.Cleanup()
	s.browser = nil
	s.launcher = nil

	if err != nil {
		return eris.Wrap(err, "deeds: close browser")
	}
	zap.L().Debug("deeds: browser session closed")
	return nil
}

// LookupOwner searches the given site for street+city and extracts the
// recorded owner name from the first result's detail page. Any failed step
// returns an error; partial progress leaves no state behind because each
// lookup uses a fresh page.
func (s *Session) LookupOwner(ctx context.Context, site Site, street, city string) (string, error) {
	if !s.opened {
		return "", eris.New("deeds: session not open")
	}
	if err := site.Validate(); err != nil {
		return "", err
	}

	query := searchQuery(street, city)
	if query == "" {
		return "", eris.Errorf("deeds: %s: empty search query", site.County)
	}

	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: site.SearchURL})
	if err != nil {
		return "", eris.Wrapf(err, "deeds: %s: open search page", site.County)
	}
	defer page.Close() //nolint:errcheck

	page = page.Timeout(s.waitTimeout)
	if err := page.WaitLoad(); err != nil {
		return "", eris.Wrapf(err, "deeds: %s: load search page", site.County)
	}

	input, err := page.Element(site.SearchInput)
	if err != nil {
		return "", eris.Wrapf(err, "deeds: %s: find search field", site.County)
	}
	if err := input.Input(query); err != nil {
		return "", eris.Wrapf(err, "deeds: %s: fill search field", site.County)
	}

	submit, err := page.Element(site.SubmitButton)
	if err != nil {
		return "", eris.Wrapf(err, "deeds: %s: find submit control", site.County)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", eris.Wrapf(err, "deeds: %s: submit search", site.County)
	}

	// Bounded wait for the results page; Element blocks until the selector
	// appears or the page timeout elapses.
	link, err := page.Element(site.ResultLink)
	if err != nil {
		return "", eris.Wrapf(err, "deeds: %s: no search results", site.County)
	}
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", eris.Wrapf(err, "deeds: %s: open result detail", site.County)
	}
	if err := page.WaitLoad(); err != nil {
		return "", eris.Wrapf(err, "deeds: %s: load detail page", site.County)
	}

	// Site markup varies; try each extraction pattern in order.
	for _, selector := range site.OwnerSelectors {
		el, elErr := page.Timeout(time.Second).Element(selector)
		if elErr != nil {
			continue
		}
		text, textErr := el.Text()
		if textErr != nil {
			continue
		}
		if owner := strings.TrimSpace(text); owner != "" {
			return owner, nil
		}
	}

	return "", eris.Errorf("deeds: %s: owner name not found on detail page", site.County)
}
