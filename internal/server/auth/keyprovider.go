package auth

import (
	"context"
	"crypto/rsa"
	"fmt"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/dmitrijs2005/userstorer/internal/common"
)

// DefaultPrivateKeySecretName and DefaultPublicKeySecretName are the secret
// names used when the config does not override them.
const (
	DefaultPrivateKeySecretName = "jwt-private-key"
	DefaultPublicKeySecretName  = "jwt-public-key"
)

// SecretFetcher retrieves a secret's string value by name.
type SecretFetcher interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerFetcher implements SecretFetcher over AWS Secrets Manager.
type SecretsManagerFetcher struct {
	client SecretsManagerAPI
}

func NewSecretsManagerFetcher(client SecretsManagerAPI) *SecretsManagerFetcher {
	return &SecretsManagerFetcher{client: client}
}

func (f *SecretsManagerFetcher) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := f.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("%w: fetching %q: %w", common.ErrSecretUnavailable, name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%w: secret %q has no string value", common.ErrSecretUnavailable, name)
	}
	return *out.SecretString, nil
}

// KeyProvider is the process-wide signing key cache. Each slot is fetched
// from the secret store on first access and kept for the life of the
// process; secret rotation requires a restart.
//
// The two slots are independent atomic cells. Concurrent first accesses to
// the same slot may each perform a redundant fetch (last writer wins),
// which is harmless: the fetched value is idempotent and the fetch is a
// one-time startup cost. Fetch failures propagate uncached, so the next
// call retries.
type KeyProvider struct {
	fetcher SecretFetcher

	privateKeySecretName string
	publicKeySecretName  string

	privateKey   atomic.Pointer[rsa.PrivateKey]
	publicKeyPem atomic.Pointer[string]
}

// NewKeyProvider builds a KeyProvider. Empty secret names fall back to the
// defaults. The instance is constructed once in the composition root and
// passed by reference to consumers; there is no package-level singleton.
func NewKeyProvider(fetcher SecretFetcher, privateKeySecretName, publicKeySecretName string) *KeyProvider {
	if privateKeySecretName == "" {
		privateKeySecretName = DefaultPrivateKeySecretName
	}
	if publicKeySecretName == "" {
		publicKeySecretName = DefaultPublicKeySecretName
	}
	return &KeyProvider{
		fetcher:              fetcher,
		privateKeySecretName: privateKeySecretName,
		publicKeySecretName:  publicKeySecretName,
	}
}

// GetPrivateKey returns the parsed RSA signing key, fetching and parsing it
// on first use.
func (p *KeyProvider) GetPrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	if key := p.privateKey.Load(); key != nil {
		return key, nil
	}

	pemText, err := p.fetcher.GetSecret(ctx, p.privateKeySecretName)
	if err != nil {
		return nil, err
	}

	key, err := ParsePrivateKey(pemText)
	if err != nil {
		return nil, err
	}

	p.privateKey.Store(key)
	return key, nil
}

// GetPublicKeyPem returns the raw PEM text of the verification key. The
// key is not parsed locally: only signing happens in-process and the PEM is
// handed verbatim to the token-verification layer.
func (p *KeyProvider) GetPublicKeyPem(ctx context.Context) (string, error) {
	if pem := p.publicKeyPem.Load(); pem != nil {
		return *pem, nil
	}

	pemText, err := p.fetcher.GetSecret(ctx, p.publicKeySecretName)
	if err != nil {
		return "", err
	}

	p.publicKeyPem.Store(&pemText)
	return pemText, nil
}
