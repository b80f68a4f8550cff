package services

import (
	"context"
	"errors"
	"time"

	"storefront-service/repository"

	"github.com/stretchr/testify/mock"
)

// --- Mocks for Dependencies ---

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, topicArn string, message []byte) error {
	args := m.Called(ctx, topicArn, message)
	return args.Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	args := m.Called(ctx, metricName, dimensions)
	return args.Error(0)
}

func (m *MockMetrics) RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error {
	args := m.Called(ctx, metricName, duration, dimensions)
	return args.Error(0)
}

func (m *MockMetrics) IsEnabled() bool {
	return true
}

type fakePresigner struct {
	key         string
	contentType string
	err         error
}

func (f *fakePresigner) PresignPut(_ context.Context, key, contentType string) (string, map[string]string, error) {
	f.key, f.contentType = key, contentType
	if f.err != nil {
		return "", nil, f.err
	}
	return "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", map[string]string{"Content-Type": contentType}, nil
}

// brokenStorage fails every call, like an unreachable backend.
type brokenStorage struct{}

var errBackendDown = errors.New("backend down")

func (brokenStorage) GetItem(context.Context, string, string) (string, bool, error) {
	return "", false, errBackendDown
}

func (brokenStorage) SetItem(context.Context, string, string, string) error {
	return errBackendDown
}

func (brokenStorage) RemoveItem(context.Context, string, string) error {
	return errBackendDown
}

var _ repository.LocalStorage = brokenStorage{}
