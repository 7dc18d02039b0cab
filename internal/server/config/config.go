// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the user-storer server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST endpoint.
//   - AWSRegion: region for the DynamoDB and Secrets Manager clients.
//   - AWSAccessKeyID / AWSSecretAccessKey: static credentials; when empty,
//     the SDK's default credential chain is used.
//   - DynamoDBEndpoint / SecretsManagerEndpoint: endpoint overrides for
//     local stacks; empty means the real AWS endpoints.
//   - UserTableName / EmailIndexName: table and GSI the user store uses.
//   - PrivateKeySecretName / PublicKeySecretName: Secrets Manager names
//     holding the signing/verification key PEM.
//   - JWTIssuer: issuer claim for issued tokens.
//   - TokenValidityDuration: access token lifetime.
//   - BcryptCost: password hashing work factor.
type Config struct {
	EndpointAddrHTTP       string
	AWSRegion              string
	AWSAccessKeyID         string
	AWSSecretAccessKey     string
	DynamoDBEndpoint       string
	SecretsManagerEndpoint string
	UserTableName          string
	EmailIndexName         string
	PrivateKeySecretName   string
	PublicKeySecretName    string
	JWTIssuer              string
	TokenValidityDuration  time.Duration
	BcryptCost             int
}

// LoadDefaults populates Config with development defaults. The endpoint
// overrides stay empty so production deployments hit real AWS unless told
// otherwise.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.AWSRegion = "us-east-1"
	c.UserTableName = "User"
	c.EmailIndexName = "email-index"
	c.PrivateKeySecretName = "jwt-private-key"
	c.PublicKeySecretName = "jwt-public-key"
	c.JWTIssuer = "user-storer"
	c.TokenValidityDuration = 15 * time.Minute
	c.BcryptCost = 12
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
