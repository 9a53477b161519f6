package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"lrn/internal/providers"
	"lrn/internal/structures"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

const maxErrorBody = 4 << 10

type androidConfig struct {
	Priority    string `json:"priority"`
	CollapseKey string `json:"collapse_key,omitempty"`
	TTL         string `json:"ttl,omitempty"`
}

type fcmMessage struct {
	Topic   string            `json:"topic"`
	Data    map[string]string `json:"data"`
	Android androidConfig     `json:"android"`
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

// FCMSink sends data messages through the Firebase Cloud Messaging HTTP v1 API.
type FCMSink struct {
	client  *http.Client
	url     string
	limiter *rate.Limiter
	logger  providers.Logger
}

// NewFCMSink builds a sink around an already authorized client.
func NewFCMSink(client *http.Client, endpoint, projectID string, ratePerSecond float64, logger providers.Logger) *FCMSink {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &FCMSink{
		client:  client,
		url:     strings.TrimRight(endpoint, "/") + "/v1/projects/" + projectID + "/messages:send",
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

func (s *FCMSink) Available() bool { return true }

func (s *FCMSink) Send(ctx context.Context, topic string, data map[string]string, collapseKey string, ttlSeconds int) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send to %s: %w", topic, err)
	}

	msg := fcmRequest{Message: fcmMessage{
		Topic: topic,
		Data:  data,
		Android: androidConfig{
			Priority:    "HIGH",
			CollapseKey: collapseKey,
		},
	}}
	if ttlSeconds > 0 {
		msg.Message.Android.TTL = fmt.Sprintf("%ds", ttlSeconds)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message for %s: %w", topic, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send to %s: %w", topic, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("send to %s: status %d: %s", topic, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debugf(providers.TypeDispatch, "FCM accepted message for topic %s", topic)
	return nil
}

// NewSink resolves service-account credentials and returns the FCM sink. Missing or
// invalid credentials yield a sink that reports itself unavailable.
func NewSink(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) Sink {
	credentials, err := loadCredentials(conf.FCM)
	if err != nil {
		logger.Warnf(providers.TypeDispatch, "Push notifications disabled: %s", err)
		return &unavailableSink{reason: err.Error()}
	}

	projectID := conf.FCM.ProjectID
	if projectID == "" {
		projectID = credentials.ProjectID
	}
	if projectID == "" {
		logger.Warnf(providers.TypeDispatch, "Push notifications disabled: no FCM project id configured")
		return &unavailableSink{reason: "no FCM project id configured"}
	}

	client := &http.Client{
		Timeout: conf.FCM.Timeout,
		Transport: &oauth2.Transport{
			Source: credentials.TokenSource,
			Base:   providers.NewMetricsTransport(http.DefaultTransport, metrics),
		},
	}

	logger.Infof(providers.TypeDispatch, "FCM sink ready for project %s", projectID)
	return NewFCMSink(client, conf.FCM.Endpoint, projectID, conf.Dispatch.RatePerSecond, logger)
}

// loadCredentials prefers inline JSON over a credentials file.
func loadCredentials(conf structures.FCMConfig) (*google.Credentials, error) {
	raw := []byte(strings.TrimSpace(conf.CredentialsJSON))
	if len(raw) == 0 {
		if conf.CredentialsFile == "" {
			return nil, fmt.Errorf("no service account credentials configured")
		}
		var err error
		raw, err = os.ReadFile(conf.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
	}

	// the context outlives this call: the token source refreshes with it
	credentials, err := google.CredentialsFromJSON(context.Background(), raw, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	return credentials, nil
}
