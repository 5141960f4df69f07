package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Varshith2802/ip-reputation-checker/internal/models"
	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
	"github.com/Varshith2802/ip-reputation-checker/pkg/ipguard"
)

// Tiny static threat-intel sets. Any other successful lookup is labeled Clean.
var (
	knownThreats = map[string]struct{}{
		"185.220.101.5": {},
		"192.99.1.11":   {},
	}
	knownClean = map[string]struct{}{
		"1.1.1.1": {},
		"8.8.8.8": {},
	}
)

// ReputationConfig configures the upstream geolocation lookup.
type ReputationConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReputationService proxies validated IPs to the external lookup service and
// annotates the result with a reputation label. No state is retained.
type ReputationService struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
	metrics *MetricsService
}

// NewReputationService constructs a ReputationService.
func NewReputationService(cfg ReputationConfig, logger *zap.Logger, metrics *MetricsService) *ReputationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReputationService{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// Lookup validates the candidate IP, queries the upstream service once with
// no retries, and returns the annotated document. Upstream failure details
// are logged but never surfaced to the caller.
func (s *ReputationService) Lookup(ctx context.Context, ip string) (models.ReputationResult, error) {
	if !ipguard.IsPublicRoutable(ip) {
		return nil, appErrors.ErrInvalidIP
	}

	start := time.Now()
	data, err := s.fetch(ctx, ip)
	if err != nil {
		s.metrics.ObserveUpstreamLookup("error", time.Since(start))
		s.logger.Warn("reputation lookup failed", zap.String("ip", ip), zap.Error(err))
		return nil, appErrors.ErrUpstreamUnavailable
	}
	s.metrics.ObserveUpstreamLookup("success", time.Since(start))

	data["reputation"] = labelFor(data, ip)
	return data, nil
}

func (s *ReputationService) fetch(ctx context.Context, ip string) (models.ReputationResult, error) {
	url := fmt.Sprintf("%s/json/%s", s.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var data models.ReputationResult
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	if data == nil {
		data = models.ReputationResult{}
	}
	return data, nil
}

// labelFor derives the reputation label, first match wins. Membership is
// keyed on the upstream-reported address, falling back to the requested one.
func labelFor(data models.ReputationResult, requested string) string {
	ip := requested
	if q, ok := data["query"].(string); ok && q != "" {
		ip = q
	}

	if _, ok := knownThreats[ip]; ok {
		return models.ReputationKnownThreat
	}
	if _, ok := knownClean[ip]; ok {
		return models.ReputationClean
	}
	if status, ok := data["status"].(string); ok && status == "success" {
		return models.ReputationClean
	}
	return models.ReputationUnknown
}
