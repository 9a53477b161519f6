package fetchers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher harvests the latest results published by one source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]models.RawResult, error)
}

// Sources is the ordered set of enabled fetchers.
type Sources []Fetcher

func NewSources(conf *structures.Config, logger providers.Logger, resolver *temporal.Resolver, metrics providers.MetricsProviderInterface) Sources {
	var sources Sources
	if conf.Sources.LoteriasDominicanas.Enabled {
		sources = append(sources, NewLoteriasDominicanas(conf.Sources.LoteriasDominicanas, logger, resolver,
			providers.NewMetricsTransport(http.DefaultTransport, metrics)))
	}
	if conf.Sources.TusNumerosRD.Enabled {
		sources = append(sources, NewTusNumerosRD(conf.Sources.TusNumerosRD, logger, resolver))
	}
	if len(sources) == 0 {
		logger.Warnf(providers.TypeFetch, "No sources enabled")
	}
	return sources
}

// recordBuilder stamps the fields every source fills the same way.
type recordBuilder struct {
	source   string
	origin   string
	resolver *temporal.Resolver
}

func newRecordBuilder(source, pageURL string, resolver *temporal.Resolver) recordBuilder {
	return recordBuilder{source: source, origin: originOf(pageURL), resolver: resolver}
}

func (b recordBuilder) build(name, logo string, numbers []string, date string, clock *string) models.RawResult {
	return models.RawResult{
		Source:         b.source,
		LotteryNameRaw: name,
		LogoURL:        models.SanitizeLogo(b.absolute(logo)),
		Numbers:        numbers,
		DateRaw:        date,
		DateNormalized: b.resolver.ResolveDate(date).Value,
		Time:           clock,
		ObservedAt:     b.resolver.Now().Format(models.ObservedAtLayout),
	}
}

func (b recordBuilder) absolute(logo string) string {
	if strings.HasPrefix(logo, "/") && !strings.HasPrefix(logo, "//") {
		return b.origin + logo
	}
	return logo
}

func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
