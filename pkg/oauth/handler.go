package oauth

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/getmockd/oauth-mock/pkg/httputil"
)

// maxTokenBodySize bounds token request bodies.
const maxTokenBodySize = 64 * 1024

// ErrServerError is answered when token issuance fails internally.
const ErrServerError = "server_error"

// Handler provides OAuth endpoint handlers
type Handler struct {
	provider *Provider
}

// NewHandler creates OAuth HTTP handlers
func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// Provider returns the provider behind the handlers.
func (h *Handler) Provider() *Provider {
	return h.provider
}

// HandleAuthorize handles the authorization endpoint. Parameters are read
// from the query string (and the form body on POST).
func (h *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteOAuthError(w, http.StatusBadRequest, ErrInvalidRequest, "failed to parse request")
		return
	}

	req := AuthorizeRequest{
		ClientID:    r.Form.Get("client_id"),
		RedirectURI: r.Form.Get("redirect_uri"),
		Scope:       r.Form.Get("scope"),
		State:       r.Form.Get("state"),
		Nonce:       r.Form.Get("nonce"),
	}

	res, err := h.provider.Authorize(req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if res.RedirectURL != "" {
		http.Redirect(w, r, res.RedirectURL, http.StatusFound)
		return
	}

	if h.provider.Profile().BindsNonce() {
		httputil.WriteJSON(w, http.StatusOK, nonceAuthorizeBody{
			Code:    res.Code,
			State:   optional(res.State),
			Nonce:   optional(res.Nonce),
			Message: AuthorizeMessage,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, authorizeBody{
		Code:    res.Code,
		State:   optional(res.State),
		Message: AuthorizeMessage,
	})
}

// HandleToken handles the token endpoint.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTokenRequest(w, r)
	if err != nil {
		httputil.WriteOAuthError(w, http.StatusBadRequest, ErrInvalidRequest, "failed to parse request body")
		return
	}

	resp, err := h.provider.Exchange(req.Grant())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteNoStoreJSON(w, http.StatusOK, resp)
}

// HandleUserInfo handles the user-info / profile endpoint.
func (h *Handler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	user, err := h.provider.UserInfo(r.Header.Get("Authorization"))
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// decodeTokenRequest reads a JSON or form-encoded token request. A client id
// sent through HTTP Basic auth is used when the body has none.
func decodeTokenRequest(w http.ResponseWriter, r *http.Request) (TokenRequest, error) {
	var req TokenRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxTokenBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req = TokenRequest{
			GrantType:    r.PostForm.Get("grant_type"),
			Code:         r.PostForm.Get("code"),
			ClientID:     r.PostForm.Get("client_id"),
			ClientSecret: r.PostForm.Get("client_secret"),
			RedirectURI:  r.PostForm.Get("redirect_uri"),
			RefreshToken: r.PostForm.Get("refresh_token"),
			Scope:        r.PostForm.Get("scope"),
		}
	}

	if req.ClientID == "" {
		if id, secret, ok := r.BasicAuth(); ok {
			req.ClientID = id
			req.ClientSecret = secret
		}
	}
	return req, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var oerr *Error
	if errors.As(err, &oerr) {
		httputil.WriteOAuthError(w, oerr.Status, oerr.Code, oerr.Description)
		return
	}
	h.provider.logger.Error("request failed", "error", err)
	httputil.WriteOAuthError(w, http.StatusInternalServerError, ErrServerError, "failed to issue tokens")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
