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

// Capability actions checked before workflow mutations
const (
	ActionSubmitDrawing    = "drawing:submit"
	ActionReviewInternal   = "drawing:review:internal"
	ActionReviewClient     = "drawing:review:client"
	ActionDeleteDrawing    = "drawing:delete"
)

// PermissionClient checks whether an actor may perform an action on a
// drawing. The computation of permissions is owned by the auth service;
// this client only consumes the yes/no answer.
type PermissionClient interface {
	CanPerform(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error)
}

// permissionCheckRequest is the request body sent to the auth service
type permissionCheckRequest struct {
	ActorID   uuid.UUID `json:"actorId"`
	Action    string    `json:"action"`
	DrawingID uuid.UUID `json:"drawingId"`
}

// permissionCheckResponse is the response body from the auth service
type permissionCheckResponse struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}

// permissionClient implements PermissionClient over HTTP
type permissionClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewPermissionClient creates a new permission service client
func NewPermissionClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) PermissionClient {
	return &permissionClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// CanPerform asks the auth service whether the actor may perform the action
func (c *permissionClient) CanPerform(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/internal/permissions/check", c.baseURL)

	jsonBody, err := json.Marshal(permissionCheckRequest{
		ActorID:   actorID,
		Action:    action,
		DrawingID: drawingID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal permission check: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
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
		c.logger.Error("Failed to check permission",
			zap.String("action", action),
			zap.String("actor_id", actorID.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("permission check failed with status: %d", resp.StatusCode)
	}

	var result permissionCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode permission response: %w", err)
	}

	return result.Allowed, nil
}

// MockPermissionClient implements PermissionClient for testing
type MockPermissionClient struct {
	CanPerformFunc func(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error)
}

// CanPerform returns the override result, defaulting to allowed
func (m *MockPermissionClient) CanPerform(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error) {
	if m.CanPerformFunc != nil {
		return m.CanPerformFunc(ctx, actorID, action, drawingID)
	}
	return true, nil
}

var _ PermissionClient = (*MockPermissionClient)(nil)
