package oauth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/getmockd/oauth-mock/pkg/logging"
)

// DefaultExpiresIn is the expires_in value when none is configured.
const DefaultExpiresIn = 3600

// Observer is notified of protocol outcomes. Outcome is "ok" or an OAuth
// error code.
type Observer interface {
	ObserveAuthorize(provider string)
	ObserveGrant(provider, grantType, outcome string)
	ObserveUserInfo(provider, outcome string)
}

// Options configures a Provider.
type Options struct {
	// Tokens issues codes and tokens. Nil uses the default prefixes in fixed mode.
	Tokens *TokenFactory
	// ExpiresIn is reported in token responses. Zero means DefaultExpiresIn.
	ExpiresIn int
	Logger    *slog.Logger
	Observer  Observer
}

// Provider emulates one identity provider. It owns the nonce bindings of
// the codes it issues and is safe for concurrent use.
type Provider struct {
	profile   atomic.Pointer[Profile]
	tokens    *TokenFactory
	nonces    *NonceStore
	expiresIn int
	logger    *slog.Logger
	observer  Observer
}

// NewProvider creates a provider for profile.
func NewProvider(profile *Profile, opts Options) (*Provider, error) {
	if profile == nil {
		return nil, errors.New("profile cannot be nil")
	}
	if opts.Tokens == nil {
		tokens, err := NewTokenFactory(DefaultPrefixes(), TokenModeFixed)
		if err != nil {
			return nil, err
		}
		opts.Tokens = tokens
	}
	if opts.ExpiresIn < 0 {
		return nil, fmt.Errorf("invalid expires_in: %d", opts.ExpiresIn)
	}
	if opts.ExpiresIn == 0 {
		opts.ExpiresIn = DefaultExpiresIn
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	p := &Provider{
		tokens:    opts.Tokens,
		nonces:    NewNonceStore(DefaultNonce),
		expiresIn: opts.ExpiresIn,
		logger:    opts.Logger.With("provider", profile.Key()),
		observer:  opts.Observer,
	}
	p.profile.Store(profile)
	return p, nil
}

// Profile returns the current profile.
func (p *Provider) Profile() *Profile {
	return p.profile.Load()
}

// SetUser replaces the mock user served by the provider.
func (p *Provider) SetUser(user UserRecord) {
	p.profile.Store(p.profile.Load().WithUser(user))
	p.logger.Info("mock user updated", "sub", user.Identity().Subject)
}

// Tokens returns the token factory.
func (p *Provider) Tokens() *TokenFactory {
	return p.tokens
}

// Nonces returns the nonce binding store.
func (p *Provider) Nonces() *NonceStore {
	return p.nonces
}

// Authorize issues an authorization code. When the profile binds nonces and
// the request carries one, the nonce is bound to the code. When the request
// carries a redirect_uri the result holds the redirect target with code and
// state appended.
func (p *Provider) Authorize(req AuthorizeRequest) (*AuthorizeResult, error) {
	profile := p.Profile()
	code := p.tokens.IssueCode()

	res := &AuthorizeResult{Code: code, State: req.State}

	if req.RedirectURI != "" {
		target, err := url.Parse(req.RedirectURI)
		if err != nil || target.Scheme == "" {
			return nil, invalidRequest(DescInvalidRedirectURI)
		}
		q := target.Query()
		q.Set("code", code)
		if req.State != "" {
			q.Set("state", req.State)
		}
		target.RawQuery = q.Encode()
		res.RedirectURL = target.String()
	}

	if profile.BindsNonce() && req.Nonce != "" {
		p.nonces.Bind(code, req.Nonce)
		res.Nonce = req.Nonce
	}

	p.logger.Debug("authorization code issued",
		"client_id", req.ClientID,
		"redirect", res.RedirectURL != "",
		"nonce", res.Nonce != "",
	)
	if p.observer != nil {
		p.observer.ObserveAuthorize(profile.Key())
	}
	return res, nil
}

// Exchange runs the token endpoint state machine for grant. Protocol
// failures are returned as *Error.
func (p *Provider) Exchange(grant Grant) (*TokenResponse, error) {
	var (
		resp *TokenResponse
		err  error
	)
	switch g := grant.(type) {
	case AuthorizationCodeGrant:
		resp, err = p.exchangeCode(g)
	case RefreshTokenGrant:
		resp, err = p.refresh(g)
	default:
		err = unsupportedGrantType()
	}

	outcome := "ok"
	var oerr *Error
	switch {
	case errors.As(err, &oerr):
		outcome = oerr.Code
	case err != nil:
		outcome = "server_error"
	}
	p.logger.Debug("token grant", "grant_type", grant.GrantType(), "outcome", outcome)
	if p.observer != nil {
		p.observer.ObserveGrant(p.Profile().Key(), grant.GrantType(), outcome)
	}
	return resp, err
}

func (p *Provider) exchangeCode(g AuthorizationCodeGrant) (*TokenResponse, error) {
	if !ValidateToken(g.Code, p.tokens.Prefixes().AuthCode) {
		return nil, invalidGrant(DescInvalidAuthCode)
	}

	profile := p.Profile()

	var nonce string
	if profile.BindsNonce() {
		nonce, _ = p.nonces.Consume(g.Code)
	}

	scope := g.Scope
	if scope == "" {
		scope = profile.DefaultScope()
	}

	resp := &TokenResponse{
		AccessToken:  p.tokens.IssueAccessToken(),
		TokenType:    TokenTypeBearer,
		ExpiresIn:    p.expiresIn,
		RefreshToken: p.tokens.IssueRefreshToken(),
		Scope:        scope,
	}

	if profile.IssuesIDToken(scope) {
		idToken, err := IssueIDToken(profile, g.ClientID, nonce)
		if err != nil {
			return nil, err
		}
		resp.IDToken = idToken
	}
	return resp, nil
}

// refresh never rotates the refresh token and never re-issues an ID token.
func (p *Provider) refresh(g RefreshTokenGrant) (*TokenResponse, error) {
	if !ValidateToken(g.RefreshToken, p.tokens.Prefixes().RefreshToken) {
		return nil, invalidGrant(DescInvalidRefreshToken)
	}
	return &TokenResponse{
		AccessToken: p.tokens.IssueAccessToken(),
		TokenType:   TokenTypeBearer,
		ExpiresIn:   p.expiresIn,
		Scope:       p.Profile().DefaultScope(),
	}, nil
}

// UserInfo validates the Authorization header value and returns the mock user.
func (p *Provider) UserInfo(authorization string) (UserRecord, error) {
	profile := p.Profile()

	token, ok := BearerToken(authorization)
	if !ok {
		p.observeUserInfo(profile, ErrUnauthorized)
		return nil, unauthorized(DescMissingAuthHeader)
	}
	if !ValidateToken(token, p.tokens.Prefixes().AccessToken) {
		p.observeUserInfo(profile, ErrUnauthorized)
		return nil, unauthorized(DescInvalidAccessToken)
	}
	p.observeUserInfo(profile, "ok")
	return profile.User(), nil
}

func (p *Provider) observeUserInfo(profile *Profile, outcome string) {
	if p.observer != nil {
		p.observer.ObserveUserInfo(profile.Key(), outcome)
	}
}
