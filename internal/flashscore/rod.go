package flashscore

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
)

// SessionOptions configures the browser session.
type SessionOptions struct {
	Headless bool
	// LoadSettle is the pause after initial navigation before the page
	// is considered ready.
	LoadSettle time.Duration
}

// Session owns one headless browser acquisition: launcher process,
// browser connection and the navigated page. Close releases all three
// and must run on every exit path.
type Session struct {
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
}

// Open launches a browser, navigates to url and waits for the initial
// render to settle. On any failure everything acquired so far is
// released before returning.
func Open(ctx context.Context, url string, opts SessionOptions) (*Session, error) {
	l := launcher.New().Headless(opts.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "flashscore: launch browser")
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, eris.Wrap(err, "flashscore: connect browser")
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, eris.Wrapf(err, "flashscore: open %s", url)
	}

	s := &Session{launch: l, browser: browser, page: page}
	if err := page.WaitLoad(); err != nil {
		s.Close()
		return nil, eris.Wrapf(err, "flashscore: load %s", url)
	}
	if err := settle(ctx, opts.LoadSettle); err != nil {
		s.Close()
		return nil, eris.Wrap(err, "flashscore: load settle cancelled")
	}
	return s, nil
}

// Page returns the pipeline-facing view of the session's page.
func (s *Session) Page() Page {
	return rodPage{page: s.page}
}

// Close releases the page, the browser and the launcher process.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launch != nil {
		s.launch.Cleanup()
	}
}

// rodPage adapts a rod page to the Page interface.
type rodPage struct {
	page *rod.Page
}

func (p rodPage) Find(selector string) (Element, bool, error) {
	ok, el, err := p.page.Has(selector)
	if err != nil {
		return nil, false, eris.Wrapf(err, "flashscore: find %s", selector)
	}
	if !ok {
		return nil, false, nil
	}
	return rodElement{el: el}, true, nil
}

func (p rodPage) FindAll(selector string) ([]Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, eris.Wrapf(err, "flashscore: find all %s", selector)
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, rodElement{el: el})
	}
	return out, nil
}

// rodElement adapts a rod element to the Element interface.
type rodElement struct {
	el *rod.Element
}

func (e rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e rodElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}

func (e rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e rodElement) WaitClickable(timeout time.Duration) error {
	_, err := e.el.Timeout(timeout).WaitInteractable()
	return err
}
