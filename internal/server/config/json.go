package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/userstorer/internal/flagx"
	"github.com/dmitrijs2005/userstorer/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP       string         `json:"endpoint_addr_http"`
	AWSRegion              string         `json:"aws_region"`
	AWSAccessKeyID         string         `json:"aws_access_key_id"`
	AWSSecretAccessKey     string         `json:"aws_secret_access_key"`
	DynamoDBEndpoint       string         `json:"dynamodb_endpoint"`
	SecretsManagerEndpoint string         `json:"secretsmanager_endpoint"`
	UserTableName          string         `json:"user_table_name"`
	EmailIndexName         string         `json:"email_index_name"`
	PrivateKeySecretName   string         `json:"private_key_secret_name"`
	PublicKeySecretName    string         `json:"public_key_secret_name"`
	JWTIssuer              string         `json:"jwt_issuer"`
	TokenValidityDuration  timex.Duration `json:"token_validity_duration"`
	BcryptCost             int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. Only fields present in the file
// (non-zero after unmarshalling) override the config. An unreadable or
// invalid file panics: a deployment pointing at broken config should not
// start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.AWSAccessKeyID, c.AWSAccessKeyID)
	setString(&config.AWSSecretAccessKey, c.AWSSecretAccessKey)
	setString(&config.DynamoDBEndpoint, c.DynamoDBEndpoint)
	setString(&config.SecretsManagerEndpoint, c.SecretsManagerEndpoint)
	setString(&config.UserTableName, c.UserTableName)
	setString(&config.EmailIndexName, c.EmailIndexName)
	setString(&config.PrivateKeySecretName, c.PrivateKeySecretName)
	setString(&config.PublicKeySecretName, c.PublicKeySecretName)
	setString(&config.JWTIssuer, c.JWTIssuer)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
