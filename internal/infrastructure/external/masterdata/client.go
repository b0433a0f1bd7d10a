// Package masterdata proxies the cost-center, employee, currency, cash-card
// and bank lookup services. Responses change rarely, so lookups are cached
// in-process with a short TTL.
package masterdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"go.uber.org/zap"
)

// Config holds master-data service settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client implements port.MasterDataClient
type Client struct {
	cfg    Config
	http   *http.Client
	tokens port.TokenProvider
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewClient creates a new master-data client
func NewClient(cfg Config, tokens port.TokenProvider, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// CostCenters lists all active cost centers.
func (c *Client) CostCenters(ctx context.Context) ([]string, error) {
	const key = "cost_centers"
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]string), nil
	}

	var body struct {
		CostCenters []string `json:"cost_centers"`
	}
	if err := c.get(ctx, "/api/cost-centers", &body); err != nil {
		return nil, fmt.Errorf("failed to get cost centers: %w", err)
	}

	c.cache.SetDefault(key, body.CostCenters)
	return body.CostCenters, nil
}

// Currencies lists the currencies accepted for payment.
func (c *Client) Currencies(ctx context.Context) ([]string, error) {
	const key = "currencies"
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]string), nil
	}

	var body struct {
		Currencies []string `json:"currencies"`
	}
	if err := c.get(ctx, "/api/currencies", &body); err != nil {
		return nil, fmt.Errorf("failed to get currencies: %w", err)
	}

	c.cache.SetDefault(key, body.Currencies)
	return body.Currencies, nil
}

// Employees lists all employee records.
func (c *Client) Employees(ctx context.Context) ([]port.Employee, error) {
	const key = "employees"
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]port.Employee), nil
	}

	var body struct {
		Employees []port.Employee `json:"employees"`
	}
	if err := c.get(ctx, "/api/employees", &body); err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	c.cache.SetDefault(key, body.Employees)
	return body.Employees, nil
}

// CashCards lists all issued cash and corporate cards.
func (c *Client) CashCards(ctx context.Context) ([]port.CashCard, error) {
	const key = "cash_cards"
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]port.CashCard), nil
	}

	var body struct {
		CashCards []port.CashCard `json:"cash_cards"`
	}
	if err := c.get(ctx, "/api/cash-cards", &body); err != nil {
		return nil, fmt.Errorf("failed to get cash cards: %w", err)
	}

	c.cache.SetDefault(key, body.CashCards)
	return body.CashCards, nil
}

// CostCenterApproval resolves the approval chain keyed by business partner
// or cost center. Returns nil when no chain is configured for the key.
func (c *Client) CostCenterApproval(ctx context.Context, key string) (*entity.CostCenterApproval, error) {
	cacheKey := "approval:" + key
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*entity.CostCenterApproval), nil
	}

	var body struct {
		Approval *entity.CostCenterApproval `json:"approval"`
	}
	if err := c.get(ctx, "/api/cost-center-approvals/"+url.PathEscape(key), &body); err != nil {
		return nil, fmt.Errorf("failed to get approval chain for %s: %w", key, err)
	}
	if body.Approval == nil {
		return nil, nil
	}

	c.cache.SetDefault(cacheKey, body.Approval)
	return body.Approval, nil
}

// BankRecords lists the bank details of a business partner. Not cached:
// bank details feed the payment step and must be current.
func (c *Client) BankRecords(ctx context.Context, bp string) ([]port.BankRecord, error) {
	var body struct {
		Records []port.BankRecord `json:"records"`
	}
	if err := c.get(ctx, "/api/bank-records/"+url.PathEscape(bp), &body); err != nil {
		return nil, fmt.Errorf("failed to get bank records for %s: %w", bp, err)
	}
	return body.Records, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Master-data request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("master-data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Master-data returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return fmt.Errorf("master-data returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.MasterDataClient = (*Client)(nil)
