package fetchers

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

const (
	TusNumerosRDName = "tusnumerosrd.com"
	missingDate      = "Fecha no encontrada"
)

// TusNumerosRD renders the results table in headless Chrome, since the rows are
// filled in by script after load.
type TusNumerosRD struct {
	conf    structures.SourceConfig
	logger  providers.Logger
	builder recordBuilder
}

func NewTusNumerosRD(conf structures.SourceConfig, logger providers.Logger, resolver *temporal.Resolver) *TusNumerosRD {
	return &TusNumerosRD{
		conf:    conf,
		logger:  logger,
		builder: newRecordBuilder(TusNumerosRDName, conf.URL, resolver),
	}
}

func (f *TusNumerosRD) Name() string {
	return TusNumerosRDName
}

func (f *TusNumerosRD) Fetch(ctx context.Context) ([]models.RawResult, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if f.conf.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		browserCtx, cancelTimeout = context.WithTimeout(browserCtx, f.conf.Timeout)
		defer cancelTimeout()
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(f.conf.URL),
		chromedp.Sleep(f.conf.WaitFor),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f.conf.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.conf.URL, err)
	}

	results := f.parse(doc.Selection)
	f.logger.Infof(providers.TypeFetch, "Fetched %d results from %s", len(results), f.Name())
	return results, nil
}

func (f *TusNumerosRD) parse(root *goquery.Selection) []models.RawResult {
	var results []models.RawResult
	root.Find("tr").Each(func(_ int, row *goquery.Selection) {
		nameTag := row.Find("h6.mb-0").First()
		if nameTag.Length() == 0 {
			return
		}
		name := strings.TrimSpace(nameTag.Text())

		var numbers []string
		row.Find("div.badge.badge-primary.badge-dot").Each(func(_ int, s *goquery.Selection) {
			numbers = append(numbers, strings.TrimSpace(s.Text()))
		})
		if name == "" || len(numbers) == 0 {
			f.logger.Debugf(providers.TypeFetch, "%s row %q has no numbers, skipped", f.Name(), name)
			return
		}

		date := missingDate
		if tag := row.Find("span.table-inner-text").First(); tag.Length() > 0 {
			date = strings.TrimSpace(tag.Text())
		}

		var clock *string
		if cells := row.Find("td.text-center"); cells.Length() > 0 {
			if text := strings.TrimSpace(cells.Last().Text()); text != "" {
				clock = models.StringPtr(text)
			}
		}

		results = append(results, f.builder.build(
			name,
			row.Find("img").First().AttrOr("src", ""),
			numbers,
			date,
			clock,
		))
	})
	return results
}
