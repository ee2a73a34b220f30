// Package googleid verifies Google ID tokens so the registry only ever sees
// an already-verified identity. Tokens are RS256 JWTs signed with keys Google
// publishes as a JWKS document.
package googleid

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

const keyTTL = time.Hour

type Verifier struct {
	clientId string
	certsURL string
	client   *http.Client

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

func New(clientId string) *Verifier {
	return NewWithCerts(clientId, defaultCertsURL, &http.Client{Timeout: 10 * time.Second})
}

// NewWithCerts allows a custom JWKS endpoint and http client, used in tests.
func NewWithCerts(clientId, certsURL string, client *http.Client) *Verifier {
	return &Verifier{clientId: clientId, certsURL: certsURL, client: client}
}

// Verify checks the token's signature, audience, expiry and issuer and
// returns the identity it asserts. Any failure is Unauthenticated: the caller
// learns only that the token did not verify.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domain.ExternalIdentity, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.key(ctx, kid)
	}

	token, err := jwt.Parse(rawToken, keyFunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.clientId),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.ExternalIdentity{}, internal_errors.Wrap(internal_errors.Unauthenticated, "Google authentication failed", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.ExternalIdentity{}, internal_errors.New(internal_errors.Unauthenticated, "Google authentication failed")
	}

	issuer, _ := claims["iss"].(string)
	if issuer != "accounts.google.com" && issuer != "https://accounts.google.com" {
		return domain.ExternalIdentity{}, internal_errors.New(internal_errors.Unauthenticated, "Google authentication failed")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return domain.ExternalIdentity{}, internal_errors.New(internal_errors.Unauthenticated, "Google authentication failed")
	}
	name, _ := claims["name"].(string)

	return domain.ExternalIdentity{Email: email, Name: name}, nil
}

// key returns the RSA public key for kid, refetching the JWKS when the cache
// is stale or the kid is unknown (Google rotates keys).
func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetched) < keyTTL {
		return key, nil
	}

	keys, err := v.fetchKeys(ctx)
	if err != nil {
		return nil, err
	}
	v.keys = keys
	v.fetched = time.Now()

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no key for kid %q", kid)
	}
	return key, nil
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (v *Verifier) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching Google certs", resp.StatusCode)
	}

	var doc jwks
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode Google certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		key, err := rsaKey(k)
		if err != nil {
			return nil, err
		}
		keys[k.Kid] = key
	}
	return keys, nil
}

func rsaKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("bad modulus in jwk %q: %w", k.Kid, err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("bad exponent in jwk %q: %w", k.Kid, err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
