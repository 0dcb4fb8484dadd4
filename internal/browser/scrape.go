package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScrapeOptions selects what Scrape returns
type ScrapeOptions struct {
	Selector   string
	HTML       bool
	Text       bool
	JSON       bool
	Screenshot bool
}

// ScrapeResult holds one entry per requested representation
type ScrapeResult struct {
	HTML       *string
	Text       *string
	JSON       map[string]any
	Screenshot []byte
}

// Link is an anchor found on the page
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Field is a named form control
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Scrape extracts the page, or the part matching opts.Selector.
func (p *Page) Scrape(opts ScrapeOptions) (*ScrapeResult, error) {
	p.mu.Lock()
	root := p.doc.Selection
	if opts.Selector != "" {
		root = p.find(opts.Selector)
		if root.Length() == 0 {
			p.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrElementNotFound, opts.Selector)
		}
	}

	res := &ScrapeResult{}
	if opts.HTML {
		var b strings.Builder
		for i := range root.Nodes {
			h, err := goquery.OuterHtml(root.Eq(i))
			if err != nil {
				p.mu.Unlock()
				return nil, fmt.Errorf("failed to serialize html: %w", err)
			}
			b.WriteString(h)
		}
		s := b.String()
		res.HTML = &s
	}
	if opts.Text {
		s := normalizeSpace(root.Text())
		res.Text = &s
	}
	if opts.JSON {
		res.JSON = map[string]any{
			"url":      p.url,
			"title":    p.title,
			"headings": headings(root, 0),
			"links":    links(root, 0),
			"fields":   fields(root),
		}
	}
	p.mu.Unlock()

	if opts.Screenshot {
		png, err := p.Screenshot(false)
		if err != nil {
			return nil, err
		}
		res.Screenshot = png
	}
	return res, nil
}

// limits per level of detail: list length and summary length, 0 is unbounded
var detailLimits = map[string][2]int{
	"brief":    {3, 80},
	"standard": {10, 280},
	"full":     {0, 0},
}

// Describe gathers the parts of the page a plain-language description asks
// for. Keywords pick the sections; without any, a text summary is returned.
func (p *Page) Describe(description, level string) map[string]any {
	limits, ok := detailLimits[level]
	if !ok {
		limits = detailLimits["standard"]
	}
	maxItems, maxText := limits[0], limits[1]

	p.mu.Lock()
	defer p.mu.Unlock()

	root := p.doc.Selection
	desc := strings.ToLower(description)
	data := map[string]any{
		"url":   p.url,
		"title": p.title,
	}

	matched := false
	if containsAny(desc, "link", "url", "href") {
		data["links"] = links(root, maxItems)
		matched = true
	}
	if containsAny(desc, "heading", "header", "title") {
		data["headings"] = headings(root, maxItems)
		matched = true
	}
	if containsAny(desc, "paragraph", "text", "content", "body") {
		data["paragraphs"] = paragraphs(root, maxItems, maxText)
		matched = true
	}
	if containsAny(desc, "form", "input", "field", "search") {
		data["fields"] = fields(root)
		matched = true
	}
	if !matched {
		data["summary"] = truncate(normalizeSpace(root.Find("body").Text()), maxText)
	}
	if level == "full" {
		if h, err := goquery.OuterHtml(root); err == nil {
			data["html"] = h
		}
	}
	return data
}

func headings(root *goquery.Selection, limit int) []string {
	out := []string{}
	root.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = append(out, normalizeSpace(s.Text()))
		return limit == 0 || len(out) < limit
	})
	return out
}

func links(root *goquery.Selection, limit int) []Link {
	out := []Link{}
	root.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		out = append(out, Link{Text: normalizeSpace(s.Text()), Href: href})
		return limit == 0 || len(out) < limit
	})
	return out
}

func paragraphs(root *goquery.Selection, limit, maxText int) []string {
	out := []string{}
	root.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = append(out, truncate(normalizeSpace(s.Text()), maxText))
		return limit == 0 || len(out) < limit
	})
	return out
}

func fields(root *goquery.Selection) []Field {
	out := []Field{}
	root.Find("input[name], textarea[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		value, _ := s.Attr("value")
		out = append(out, Field{Name: name, Value: value})
	})
	return out
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
