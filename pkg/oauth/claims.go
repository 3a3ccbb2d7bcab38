package oauth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultClientID is the aud claim when the token request names no client.
const DefaultClientID = "default_client_id"

// signingKey is the fixed, public HS256 key for mock ID tokens. The
// signature only has to be structurally valid.
var signingKey = []byte("mock_jwt_secret_key_for_development_only")

// SigningKey returns a copy of the HS256 key used for ID tokens, so test
// suites can verify tokens themselves.
func SigningKey() []byte {
	return append([]byte(nil), signingKey...)
}

type claimInput struct {
	issuer   string
	audience string
	nonce    string
	identity Identity
}

type claimField struct {
	name  string
	value func(in claimInput) any
}

var (
	claimIss        = claimField{"iss", func(in claimInput) any { return in.issuer }}
	claimAud        = claimField{"aud", func(in claimInput) any { return in.audience }}
	claimSub        = claimField{"sub", func(in claimInput) any { return in.identity.Subject }}
	claimEmail      = claimField{"email", func(in claimInput) any { return in.identity.Email }}
	claimName       = claimField{"name", func(in claimInput) any { return in.identity.Name }}
	claimGivenName  = claimField{"given_name", func(in claimInput) any { return in.identity.GivenName }}
	claimFamilyName = claimField{"family_name", func(in claimInput) any { return in.identity.FamilyName }}
	claimPicture    = claimField{"picture", func(in claimInput) any { return in.identity.Picture }}
	claimLocale     = claimField{"locale", func(in claimInput) any { return in.identity.Locale }}
	claimNonce      = claimField{"nonce", func(in claimInput) any { return in.nonce }}
)

var googleClaims = []claimField{
	claimIss, claimAud, claimSub, claimEmail, claimName,
	claimGivenName, claimFamilyName, claimPicture, claimLocale,
}

var lineClaims = []claimField{
	claimIss, claimAud, claimSub, claimEmail, claimName, claimPicture, claimNonce,
}

// AssembleClaims builds the ID-token claim set for profile. The result holds
// exactly the keys in profile.ClaimNames(). An empty clientID becomes
// DefaultClientID; an empty nonce becomes DefaultNonce for profiles that
// carry one.
func AssembleClaims(profile *Profile, clientID, nonce string) jwt.MapClaims {
	if clientID == "" {
		clientID = DefaultClientID
	}
	if nonce == "" {
		nonce = DefaultNonce
	}
	in := claimInput{
		issuer:   profile.issuer,
		audience: clientID,
		nonce:    nonce,
		identity: profile.user.Identity(),
	}

	claims := make(jwt.MapClaims, len(profile.claims))
	for _, c := range profile.claims {
		claims[c.name] = c.value(in)
	}
	return claims
}

// SignClaims signs claims with HS256 and the fixed mock key.
func SignClaims(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign id token: %w", err)
	}
	return signed, nil
}

// IssueIDToken assembles and signs an ID token in one step.
func IssueIDToken(profile *Profile, clientID, nonce string) (string, error) {
	return SignClaims(AssembleClaims(profile, clientID, nonce))
}

// ParseIDToken verifies an ID token issued by this package and returns its claims.
func ParseIDToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}
	return claims, nil
}
