// Package oauth provides deterministic mock OAuth 2.0 and OpenID Connect
// providers for testing login flows against Google- and LINE-like APIs.
//
// Everything a provider issues is predictable: authorization codes, access
// tokens and refresh tokens are a fixed prefix followed by a fixed suffix
// (or a random one in TokenModeUnique), and ID tokens are HS256 JWTs signed
// with a public development key. Tokens are validated by prefix only.
//
// # Profiles
//
// A Profile captures how one real provider behaves:
//
//	google := oauth.GoogleProfile(oauth.DefaultGoogleUser())
//	line := oauth.LINEProfile(oauth.DefaultLINEUser())
//
// The Google profile returns an ID token only when the granted scope holds
// "openid". The LINE profile always returns one and carries the nonce from
// the authorization request into it.
//
// # Basic Usage
//
//	provider, err := oauth.NewProvider(line, oauth.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, _ := provider.Authorize(oauth.AuthorizeRequest{Nonce: "n-1"})
//	tokens, _ := provider.Exchange(oauth.AuthorizationCodeGrant{
//	    Code:     res.Code,
//	    ClientID: "my-client",
//	})
//	claims, _ := oauth.ParseIDToken(tokens.IDToken) // claims["nonce"] == "n-1"
//
// # HTTP Handlers
//
// Handler adapts a Provider to net/http. Paths are chosen by the caller:
//
//	handler := oauth.NewHandler(provider)
//
//	r.Get("/oauth2/v2.1/authorize", handler.HandleAuthorize)
//	r.Post("/oauth2/v2.1/token", handler.HandleToken)
//	r.Get("/v2/profile", handler.HandleUserInfo)
package oauth
