package browser

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrElementNotFound = errors.New("element not found")
)

const blankPage = `<html><head><title></title></head><body></body></html>`

// Page is a simulated browser tab. Navigation renders a deterministic
// document which actions then query and mutate through goquery.
type Page struct {
	mu        sync.Mutex
	url       string
	title     string
	doc       *goquery.Document
	loading   bool
	viewport  Viewport
	userAgent string
	history   []string
	version   uint64
}

// State is a point-in-time view of a page
type State struct {
	URL       string
	Title     string
	IsLoading bool
	Viewport  Viewport
	UserAgent string
	Version   uint64
}

func newPage(viewport Viewport, userAgent string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blankPage))
	if err != nil {
		return nil, err
	}
	return &Page{
		url:       "about:blank",
		doc:       doc,
		viewport:  viewport,
		userAgent: userAgent,
	}, nil
}

// State returns the current page state. A page left loading by an action
// that did not wait reports IsLoading once, then settles.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := State{
		URL:       p.url,
		Title:     p.title,
		IsLoading: p.loading,
		Viewport:  p.viewport,
		UserAgent: p.userAgent,
		Version:   p.version,
	}
	p.loading = false
	return s
}

// Location returns the current URL and title
func (p *Page) Location() (string, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, p.title
}

// History lists every URL the page has loaded, oldest first
func (p *Page) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}

// Navigate loads rawURL. Only absolute http(s) URLs are accepted.
func (p *Page) Navigate(rawURL, wait string) error {
	u, err := parseTarget(rawURL)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(u, wait)
}

// Click clicks the first element matching selector. Links are followed and
// submit buttons submit their form.
func (p *Page) Click(selector, wait string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el := p.find(selector).First()
	if el.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	if goquery.NodeName(el) == "a" {
		if href, ok := el.Attr("href"); ok && href != "" {
			target, err := p.resolve(href)
			if err != nil {
				return err
			}
			return p.load(target, wait)
		}
	}
	if isSubmit(el) {
		if form := el.Closest("form"); form.Length() > 0 {
			return p.submit(form, wait)
		}
	}

	el.SetAttr("data-clicked", "true")
	p.version++
	return nil
}

// Type appends text to the value of the first element matching selector.
func (p *Page) Type(selector, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el := p.find(selector).First()
	if el.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	switch goquery.NodeName(el) {
	case "input", "textarea":
		current, _ := el.Attr("value")
		el.SetAttr("value", current+text)
	default:
		el.AppendHtml(html.EscapeString(text))
	}
	p.version++
	return nil
}

// Press presses key on the first element matching selector. Enter inside a
// form submits it.
func (p *Page) Press(selector, key, wait string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el := p.find(selector).First()
	if el.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	if strings.EqualFold(key, "Enter") {
		if form := el.Closest("form"); form.Length() > 0 {
			return p.submit(form, wait)
		}
	}

	el.SetAttr("data-last-key", key)
	p.version++
	return nil
}

// DragAndDrop moves the first element matching source into the first
// element matching target.
func (p *Page) DragAndDrop(source, target string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	src := p.find(source).First()
	if src.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, source)
	}
	dst := p.find(target).First()
	if dst.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, target)
	}
	if src.IsSelection(dst) || dst.ParentsFiltered("*").IsSelection(src) {
		return fmt.Errorf("cannot drop %s into itself", source)
	}

	dst.AppendSelection(src)
	p.version++
	return nil
}

// HTML returns the serialized document
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return goquery.OuterHtml(p.doc.Selection)
}

func (p *Page) load(u *url.URL, wait string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderPage(u)))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", u, err)
	}

	p.url = u.String()
	p.title = strings.TrimSpace(doc.Find("title").First().Text())
	p.doc = doc
	p.loading = wait == "none"
	p.history = append(p.history, p.url)
	p.version++
	return nil
}

func (p *Page) submit(form *goquery.Selection, wait string) error {
	action, _ := form.Attr("action")
	target, err := p.resolve(action)
	if err != nil {
		return err
	}

	q := target.Query()
	form.Find("input[name], textarea[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		value, _ := s.Attr("value")
		q.Set(name, value)
	})
	target.RawQuery = q.Encode()
	return p.load(target, wait)
}

func (p *Page) resolve(ref string) (*url.URL, error) {
	base, err := url.Parse(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, p.url)
	}
	u, err := base.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, ref)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, u)
	}
	return u, nil
}

// find resolves selector as CSS first, then falls back to matching the
// visible text or labelling attributes of interactive elements, so plain
// descriptions like "More information" work too.
func (p *Page) find(selector string) *goquery.Selection {
	if sel := p.doc.Find(selector); sel.Length() > 0 {
		return sel
	}

	needle := strings.ToLower(strings.TrimSpace(selector))
	if needle == "" {
		return p.doc.Selection.Slice(0, 0)
	}
	match := func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(normalizeSpace(s.Text())), needle) {
			return true
		}
		for _, attr := range []string{"placeholder", "name", "aria-label", "id"} {
			if v, ok := s.Attr(attr); ok && strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
	// interactive elements win over the text blocks containing them
	if sel := p.doc.Find("a, button, input, textarea, label").FilterFunction(match); sel.Length() > 0 {
		return sel
	}
	return p.doc.Find("h1, h2, h3, p, div").FilterFunction(func(i int, s *goquery.Selection) bool {
		return s.Find("div, p").Length() == 0 && match(i, s)
	})
}

func isSubmit(el *goquery.Selection) bool {
	switch goquery.NodeName(el) {
	case "button":
		t, ok := el.Attr("type")
		return !ok || t == "submit"
	case "input":
		t, _ := el.Attr("type")
		return t == "submit"
	}
	return false
}

func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// pageTitle names the synthetic document for u.
func pageTitle(u *url.URL) string {
	host := strings.TrimPrefix(u.Hostname(), "www.")
	base := host
	if name, _, ok := strings.Cut(host, "."); ok && name != "" {
		base = strings.ToUpper(name[:1]) + name[1:] + " Domain"
	}
	if q := u.Query().Get("q"); q != "" {
		return q + " - " + base
	}
	return base
}

func renderPage(u *url.URL) string {
	title := html.EscapeString(pageTitle(u))
	var b bytes.Buffer
	fmt.Fprintf(&b, `<!doctype html><html><head><title>%s</title><meta charset="utf-8"></head><body>`, title)
	fmt.Fprintf(&b, `<div><h1>%s</h1>`, title)
	fmt.Fprintf(&b, `<p>This domain is for use in illustrative examples in documents. You are viewing %s.</p>`, html.EscapeString(u.String()))
	b.WriteString(`<p><a href="https://www.iana.org/domains/example">More information...</a></p></div>`)
	b.WriteString(`<form id="search" action="/search"><label for="q">Search</label>`)
	b.WriteString(`<input id="q" name="q" type="text" placeholder="Search this site" value=""><button type="submit">Go</button></form>`)
	b.WriteString(`<section><div class="draggable" id="drag-item">Drag me</div><div class="drop-zone" id="drop-target"></div></section>`)
	b.WriteString(`</body></html>`)
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
