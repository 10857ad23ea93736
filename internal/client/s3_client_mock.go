package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS
// credentials. It tracks uploaded keys so tests can assert that a failed
// submission leaves no orphaned file behind.
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	mu    sync.Mutex
	files map[string]bool

	// Optional function overrides for custom test behavior
	UploadFileFunc func(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFileFunc func(ctx context.Context, key string) error
	GetFileURLFunc func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "us-east-1",
		files:  make(map[string]bool),
	}
}

// GenerateFileKey generates a unique file key for S3 storage
func (m *MockS3Client) GenerateFileKey(projectID, drawingID uuid.UUID, fileName string) string {
	now := time.Now()
	return fmt.Sprintf("drawings/%s/%s/%s/%s/%s_%d%s",
		projectID, drawingID, now.Format("2006"), now.Format("01"),
		uuid.New().String(), now.UnixNano(), path.Ext(fileName))
}

// UploadFile simulates file upload and records the key
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		if err := m.UploadFileFunc(ctx, key, file, contentType); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = true
	return nil
}

// DeleteFile simulates file deletion and removes the key
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		if err := m.DeleteFileFunc(ctx, key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// HasFile reports whether a key is currently stored
func (m *MockS3Client) HasFile(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[key]
}

// FileCount returns the number of stored keys
func (m *MockS3Client) FileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
