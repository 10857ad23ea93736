package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drawing-review-api/internal/metrics"
)

// NotificationType represents the type of workflow notification
type NotificationType string

const (
	NotificationDrawingSubmitted   NotificationType = "DRAWING_SUBMITTED"
	NotificationDrawingReviewed    NotificationType = "DRAWING_REVIEWED"
	NotificationClientReviewOpened NotificationType = "CLIENT_REVIEW_OPENED"
)

// NotificationEvent represents a notification to be delivered after a
// successful workflow operation
type NotificationEvent struct {
	Type       NotificationType       `json:"type"`
	ActorID    uuid.UUID              `json:"actorId"`
	DrawingID  uuid.UUID              `json:"drawingId"`
	ProjectID  uuid.UUID              `json:"projectId"`
	NewStatus  string                 `json:"newStatus"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt string                 `json:"occurredAt,omitempty"`
}

// NotificationClient defines the interface for notification service
// communication. Delivery is fire-and-forget: failures are logged and never
// propagated to the workflow operation that triggered them.
type NotificationClient interface {
	SendNotification(ctx context.Context, event NotificationEvent) error
}

// notificationClient implements NotificationClient over HTTP
type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new notification API client
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SendNotification sends a single notification to the notification service
func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	url := fmt.Sprintf("%s/api/internal/notifications", c.baseURL)

	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("Failed to marshal notification event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
		)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		c.logger.Error("Failed to create notification request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send notification",
			zap.String("type", string(event.Type)),
			zap.String("drawing_id", event.DrawingID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("Notification service returned error status",
			zap.String("type", string(event.Type)),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}

// MockNotificationClient implements NotificationClient for testing
type MockNotificationClient struct {
	SendNotificationFunc func(ctx context.Context, event NotificationEvent) error
	Events               []NotificationEvent
}

// SendNotification records the event and returns the override result
func (m *MockNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	m.Events = append(m.Events, event)
	if m.SendNotificationFunc != nil {
		return m.SendNotificationFunc(ctx, event)
	}
	return nil
}

var _ NotificationClient = (*MockNotificationClient)(nil)
