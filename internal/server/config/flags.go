package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userstorer/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   AWS region
//	-k string   AWS access key id (static credentials)
//	-w string   AWS secret access key (static credentials)
//	-d string   DynamoDB endpoint override
//	-m string   Secrets Manager endpoint override
//	-t string   user table name
//	-x string   email GSI name
//	-p string   private key secret name
//	-u string   public key secret name
//	-i string   JWT issuer
//	-v int      token validity, minutes
//	-b int      bcrypt cost
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The validity
// flag is accepted as an integer in minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-g", "-k", "-w", "-d", "-m", "-t", "-x", "-p", "-u", "-i", "-v", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSAccessKeyID, "k", config.AWSAccessKeyID, "AWS access key id")
	fs.StringVar(&config.AWSSecretAccessKey, "w", config.AWSSecretAccessKey, "AWS secret access key")
	fs.StringVar(&config.DynamoDBEndpoint, "d", config.DynamoDBEndpoint, "DynamoDB endpoint override")
	fs.StringVar(&config.SecretsManagerEndpoint, "m", config.SecretsManagerEndpoint, "Secrets Manager endpoint override")
	fs.StringVar(&config.UserTableName, "t", config.UserTableName, "user table name")
	fs.StringVar(&config.EmailIndexName, "x", config.EmailIndexName, "email index name")
	fs.StringVar(&config.PrivateKeySecretName, "p", config.PrivateKeySecretName, "private key secret name")
	fs.StringVar(&config.PublicKeySecretName, "u", config.PublicKeySecretName, "public key secret name")
	fs.StringVar(&config.JWTIssuer, "i", config.JWTIssuer, "JWT issuer")

	tokenValidity := fs.Int("v", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
