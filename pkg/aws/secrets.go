package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// StorageCredentialsSecret names the secret holding StorageCredentials.
const StorageCredentialsSecret = "storefront/STORAGE_CREDENTIALS"

// StorageCredentials overrides the connection settings of the storage
// backends. Empty fields leave the local setting in place.
type StorageCredentials struct {
	PostgresUser     string `json:"POSTGRES_USER"`
	PostgresPassword string `json:"POSTGRES_PASSWORD"`
	PostgresDB       string `json:"POSTGRES_DB"`
	PostgresHost     string `json:"POSTGRES_HOST"`
	PostgresPort     string `json:"POSTGRES_PORT"`
	RedisURL         string `json:"REDIS_URL"`
}

// SecretsAPI is the part of the Secrets Manager client the service uses.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient reads string secrets and caches them for the life of the
// process.
type SecretsClient struct {
	api   SecretsAPI
	mu    sync.RWMutex
	cache map[string]string
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return NewSecretsClientWithAPI(secretsmanager.NewFromConfig(cfg))
}

// NewSecretsClientWithAPI wraps an existing Secrets Manager client.
func NewSecretsClientWithAPI(api SecretsAPI) *SecretsClient {
	return &SecretsClient{
		api:   api,
		cache: make(map[string]string),
	}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	v, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	s.mu.Lock()
	s.cache[name] = *out.SecretString
	s.mu.Unlock()
	return *out.SecretString, nil
}

// GetJSON decodes the secret name into dst.
func (s *SecretsClient) GetJSON(ctx context.Context, name string, dst any) error {
	raw, err := s.GetSecret(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("secret %s is not valid JSON: %w", name, err)
	}
	return nil
}

// StorageCredentials reads StorageCredentialsSecret.
func (s *SecretsClient) StorageCredentials(ctx context.Context) (*StorageCredentials, error) {
	var creds StorageCredentials
	if err := s.GetJSON(ctx, StorageCredentialsSecret, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
