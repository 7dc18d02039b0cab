package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":      "www.example:9000",
		"aws_region":              "eu-west-1",
		"dynamodb_endpoint":       "http://localhost:8000",
		"secretsmanager_endpoint": "http://localhost:4566",
		"user_table_name":         "UserTest",
		"email_index_name":        "email-test-index",
		"private_key_secret_name": "test-private",
		"public_key_secret_name":  "test-public",
		"jwt_issuer":              "test-issuer",
		"token_validity_duration": "5m",
		"bcrypt_cost":             4,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "eu-west-1", cfg.AWSRegion)
		assert.Equal(t, "http://localhost:8000", cfg.DynamoDBEndpoint)
		assert.Equal(t, "http://localhost:4566", cfg.SecretsManagerEndpoint)
		assert.Equal(t, "UserTest", cfg.UserTableName)
		assert.Equal(t, "email-test-index", cfg.EmailIndexName)
		assert.Equal(t, "test-private", cfg.PrivateKeySecretName)
		assert.Equal(t, "test-public", cfg.PublicKeySecretName)
		assert.Equal(t, "test-issuer", cfg.JWTIssuer)
		assert.Equal(t, 5*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("absent fields keep existing values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr_http": "partial:1234",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "partial:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "User", cfg.UserTableName)
		assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 12, cfg.BcryptCost)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", UserTableName: "T"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "T", cfg.UserTableName)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
