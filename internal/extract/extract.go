// Package extract parses event pages into company records.
package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/fetch"
	"github.com/JAlbertCode/event-tracker/internal/types"
)

// Error represents a failure to parse an event page.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Companies extracts sponsor and attendee entries from event page HTML.
// Sponsors are matched by the .sponsor selector and attendees by
// .attendee; the company name comes from the nested .name element and
// the website from the first link, resolved against the page URL.
// Entries without a name are skipped.
func Companies(htmlContent, pageURL string) ([]types.Company, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &Error{Message: fmt.Sprintf("invalid page URL %q", pageURL), Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &Error{Message: "failed to parse HTML", Cause: err}
	}

	var companies []types.Company
	collect := func(selector string, companyType types.CompanyType) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			name := strings.TrimSpace(s.Find(".name").First().Text())
			if name == "" {
				return
			}
			companies = append(companies, types.Company{
				Name:    name,
				Website: resolveWebsite(base, s),
				Type:    companyType,
			})
		})
	}
	collect(".sponsor", types.Sponsor)
	collect(".attendee", types.Attendee)

	return companies, nil
}

// resolveWebsite pulls the first link out of a company entry and
// resolves it against the page URL, so relative hrefs come back absolute.
func resolveWebsite(base *url.URL, s *goquery.Selection) string {
	href, ok := s.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	linkURL, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(linkURL).String()
}

// Extractor fetches an event page and extracts its companies. When the
// plain HTTP response yields no companies and browser rendering is
// enabled, the page is re-fetched through a headless browser.
type Extractor struct {
	opts       *fetch.Options
	useBrowser bool
	log        zerolog.Logger
}

// NewExtractor creates an extractor with the given fetch options.
func NewExtractor(opts *fetch.Options, useBrowser bool, log zerolog.Logger) *Extractor {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Extractor{opts: opts, useBrowser: useBrowser, log: log}
}

// FromURL fetches the event page and returns its companies.
func (e *Extractor) FromURL(ctx context.Context, pageURL string) ([]types.Company, error) {
	result, err := fetch.Page(ctx, pageURL, e.opts)
	if err != nil {
		return nil, err
	}

	companies, err := Companies(result.HTML, pageURL)
	if err != nil {
		return nil, err
	}

	if len(companies) == 0 && e.useBrowser {
		e.log.Debug().Str("url", pageURL).Msg("no companies in static HTML, retrying with browser")
		html, err := fetch.WithBrowser(ctx, pageURL, e.opts.Timeout)
		if err != nil {
			return nil, err
		}
		return Companies(html, pageURL)
	}

	return companies, nil
}
