package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

const LoteriasDominicanasName = "loteriasdominicanas.com"

// LoteriasDominicanas scrapes the server-rendered "últimos resultados" page.
// The page does not publish draw times.
type LoteriasDominicanas struct {
	conf      structures.SourceConfig
	logger    providers.Logger
	builder   recordBuilder
	transport http.RoundTripper
}

func NewLoteriasDominicanas(conf structures.SourceConfig, logger providers.Logger, resolver *temporal.Resolver, transport http.RoundTripper) *LoteriasDominicanas {
	return &LoteriasDominicanas{
		conf:      conf,
		logger:    logger,
		builder:   newRecordBuilder(LoteriasDominicanasName, conf.URL, resolver),
		transport: transport,
	}
}

func (f *LoteriasDominicanas) Name() string {
	return LoteriasDominicanasName
}

func (f *LoteriasDominicanas) Fetch(ctx context.Context) ([]models.RawResult, error) {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(userAgent),
	)
	if f.transport != nil {
		c.WithTransport(f.transport)
	}
	if f.conf.Timeout > 0 {
		c.SetRequestTimeout(f.conf.Timeout)
	}

	var results []models.RawResult
	c.OnHTML("html", func(e *colly.HTMLElement) {
		results = f.parse(e.DOM)
	})
	c.OnError(func(r *colly.Response, err error) {
		f.logger.Errorf(providers.TypeFetch, "%s responded %d: %s", f.Name(), r.StatusCode, err)
	})

	if err := c.Visit(f.conf.URL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", f.conf.URL, err)
	}
	c.Wait()

	f.logger.Infof(providers.TypeFetch, "Fetched %d results from %s", len(results), f.Name())
	return results, nil
}

func (f *LoteriasDominicanas) parse(root *goquery.Selection) []models.RawResult {
	var results []models.RawResult
	root.Find("div.game-info.p-2").Each(func(i int, game *goquery.Selection) {
		dateTag := game.Find(".session-date").First()
		nameTag := game.Find(".game-title span").First()
		scores := game.NextAllFiltered("div.game-scores").First()
		if dateTag.Length() == 0 || nameTag.Length() == 0 || scores.Length() == 0 {
			f.logger.Debugf(providers.TypeFetch, "%s card %d is missing a field, skipped", f.Name(), i)
			return
		}

		img := game.Find("div.game-logo img").First()
		logo := img.AttrOr("src", "")
		if logo == "" {
			logo = img.AttrOr("data-src", "")
		}

		var numbers []string
		scores.Find("span.score").Each(func(_ int, s *goquery.Selection) {
			numbers = append(numbers, strings.TrimSpace(s.Text()))
		})

		results = append(results, f.builder.build(
			strings.TrimSpace(nameTag.Text()),
			logo,
			numbers,
			strings.TrimSpace(dateTag.Text()),
			nil,
		))
	})
	return results
}
