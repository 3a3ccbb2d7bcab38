package oauth

import "sync"

// DefaultNonce is substituted when a code is exchanged without a bound nonce.
const DefaultNonce = "mock_nonce_1234567890123456"

// NonceStore binds authorization codes to the nonce supplied on the
// authorization request. A binding is removed when it is consumed.
// Bindings never expire; they live until consumed or until the store is dropped.
type NonceStore struct {
	mu       sync.Mutex
	bindings map[string]string
	fallback string
}

// NewNonceStore creates an empty store that answers fallback for unknown codes.
// An empty fallback means DefaultNonce.
func NewNonceStore(fallback string) *NonceStore {
	if fallback == "" {
		fallback = DefaultNonce
	}
	return &NonceStore{
		bindings: make(map[string]string),
		fallback: fallback,
	}
}

// Bind registers nonce for code, replacing any earlier binding.
func (s *NonceStore) Bind(code, nonce string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[code] = nonce
}

// Consume returns the nonce bound to code and removes the binding. The
// second result reports whether a binding existed; when it did not, the
// fallback nonce is returned.
func (s *NonceStore) Consume(code string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nonce, ok := s.bindings[code]
	if !ok {
		return s.fallback, false
	}
	delete(s.bindings, code)
	return nonce, true
}

// Len returns the number of live bindings.
func (s *NonceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bindings)
}
