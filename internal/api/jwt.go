package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type sessionClaims struct {
	Sub  string `json:"sub"`  // player uuid
	Name string `json:"name"` // display name
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

var (
	secretMu      sync.Mutex
	sessionSecret []byte
)

// SetSessionSecret configures the HMAC key for session tokens. When never
// called, a random per-process key is generated.
func SetSessionSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if secret == "" {
		sessionSecret = nil
		return
	}
	sessionSecret = []byte(secret)
}

func getSessionSecret() ([]byte, error) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if len(sessionSecret) == 0 {
		sessionSecret = make([]byte, 32)
		if _, err := crand.Read(sessionSecret); err != nil {
			sessionSecret = nil
			return nil, errors.New("failed to generate session secret")
		}
	}
	return sessionSecret, nil
}

func b64url(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func b64urlDecode(s string) ([]byte, error) {
	// pad to multiple of 4
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(s)
}

func signHS256(data string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	return b64url(mac.Sum(nil))
}

func createSessionToken(playerUUID, name string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	hdrJSON, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	now := time.Now().Unix()
	clJSON, _ := json.Marshal(sessionClaims{Sub: playerUUID, Name: name, Iat: now, Exp: now + int64(ttl.Seconds())})
	unsigned := fmt.Sprintf("%s.%s", b64url(hdrJSON), b64url(clJSON))
	return unsigned + "." + signHS256(unsigned, secret), nil
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token format")
	}
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	expected := signHS256(parts[0]+"."+parts[1], secret)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payload, err := b64urlDecode(parts[1])
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Sub == "" {
		return nil, errors.New("missing subject")
	}
	if time.Now().Unix() > claims.Exp {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
