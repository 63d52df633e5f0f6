package chi

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/shopsearch/internal/logger"
)

// APIKeyHeader is accepted alongside "Authorization: Bearer" for storefront
// widgets that cannot set the Authorization header.
const APIKeyHeader = "X-API-Key"

// publicPaths stay reachable for probes and scrapers.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// keyring holds SHA-256 digests so comparisons run in constant time
// regardless of key length.
type keyring [][sha256.Size]byte

func newKeyring(keys []string) keyring {
	var kr keyring
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			kr = append(kr, sha256.Sum256([]byte(k)))
		}
	}
	return kr
}

func (kr keyring) accepts(token string) bool {
	sum := sha256.Sum256([]byte(token))
	ok := 0
	for i := range kr {
		ok |= subtle.ConstantTimeCompare(sum[:], kr[i][:])
	}
	return ok == 1
}

// APIKeyAuth guards the search API with static keys. An empty key list
// disables the check.
func APIKeyAuth(apiKeys []string) func(http.Handler) http.Handler {
	kr := newKeyring(apiKeys)

	return func(next http.Handler) http.Handler {
		if len(kr) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := credential(r)
			if msg == "" && !kr.accepts(token) {
				msg = "invalid api key"
			}
			if msg != "" {
				logpkg.FromContext(r.Context()).Debug("Rejected request", zap.String("reason", msg))
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// credential extracts the presented key. A non-empty msg explains why none
// could be read.
func credential(r *http.Request) (token, msg string) {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key, ""
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "missing api key"
	}
	scheme, rest, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", "authorization header must use Bearer scheme"
	}
	return strings.TrimSpace(rest), ""
}
