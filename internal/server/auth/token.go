package auth

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/userstorer/internal/server/models"
)

// DefaultIssuer is the issuer claim value when the config does not
// override it.
const DefaultIssuer = "user-storer"

// TokenValidity is the fixed access token lifetime.
const TokenValidity = 900 * time.Second

// Claims is the token payload: the registered claims plus the MicroProfile
// JWT fields the verification layer expects ("upn" for the principal name,
// "groups" for role membership) and a display username.
type Claims struct {
	jwt.RegisteredClaims
	UPN      string   `json:"upn"`
	Groups   []string `json:"groups"`
	Username string   `json:"username"`
}

// IssueToken signs an RS256 access token for the given user. Groups is
// always a set, never null; issuance and expiry are second-precision per
// the JWT numeric date rules.
func IssueToken(user *models.User, now time.Time, key *rsa.PrivateKey, issuer string, validity time.Duration) (string, error) {
	groups := user.Roles
	if groups == nil {
		groups = []string{}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UPN:      user.Email,
		Groups:   groups,
		Username: user.Username,
	})

	return token.SignedString(key)
}
