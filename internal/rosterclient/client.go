package rosterclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/user-administration/internal"
	"github.com/frahmantamala/user-administration/internal/employee"
)

// Client fetches the employee roster from the upstream HR system.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *slog.Logger
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type rosterEntry struct {
	EmpID string `json:"emp_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type rosterResponse struct {
	Data []rosterEntry `json:"data"`
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		timeout: timeout,
		logger:  logger,
	}
}

// FetchRoster downloads the full employee roster.
func (c *Client) FetchRoster(ctx context.Context) ([]employee.Employee, error) {
	reqCtx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, "GET", c.baseURL+"/employees", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster API returned status %d", resp.StatusCode)
	}

	var payload rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}

	employees := make([]employee.Employee, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.EmpID == "" {
			continue
		}
		employees = append(employees, employee.Employee{
			EmpID: entry.EmpID,
			Name:  entry.Name,
			Email: entry.Email,
		})
	}

	return employees, nil
}

// RosterSyncer is implemented by the employee service.
type RosterSyncer interface {
	SyncRoster(employees []employee.Employee) error
}

// Syncer periodically refreshes the local roster mirror.
type Syncer struct {
	client   *Client
	service  RosterSyncer
	interval time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewSyncer(client *Client, service RosterSyncer, interval time.Duration, logger *slog.Logger) *Syncer {
	if interval <= 0 {
		interval = time.Hour
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Syncer{
		client:   client,
		service:  service,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs an immediate sync and then refreshes on the configured interval.
func (s *Syncer) Start() {
	s.once.Do(func() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()

			s.syncOnce()

			ticker := time.NewTicker(s.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					s.syncOnce()
				case <-s.ctx.Done():
					s.logger.Info("roster syncer shutting down")
					return
				}
			}
		}()

		s.logger.Info("roster syncer started", "interval", s.interval.String())
	})
}

func (s *Syncer) syncOnce() {
	employees, err := s.client.FetchRoster(s.ctx)
	if err != nil {
		s.logger.Error("roster fetch failed", "error", err)
		return
	}

	if err := s.service.SyncRoster(employees); err != nil {
		s.logger.Error("roster sync failed", "error", err)
		return
	}

	s.logger.Info("roster synced", "employee_count", len(employees))
}

func (s *Syncer) Shutdown() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("roster syncer shutdown complete")
}
