package openpayments

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Signer attaches proof of the client identity to an outbound request. The
// signing mechanism itself is a replaceable boundary; the client only cares
// that every request leaves signed.
type Signer interface {
	Sign(req *http.Request, body []byte) error
}

// NopSigner sends requests unsigned. Test servers only.
type NopSigner struct{}

func (NopSigner) Sign(*http.Request, []byte) error { return nil }

// NewSigner returns an HTTP message-signature signer keyed by the client's
// key id and ed25519 private key.
func NewSigner(keyID string, key ed25519.PrivateKey) Signer {
	return &signer{keyID: keyID, key: key}
}

type signer struct {
	keyID string
	key   ed25519.PrivateKey
}

func (s *signer) Sign(req *http.Request, body []byte) error {
	components := []string{"@method", "@target-uri"}

	if len(body) > 0 {
		digest := sha256.Sum256(body)
		req.Header.Set("Content-Digest",
			fmt.Sprintf("sha-256=:%s:", base64.StdEncoding.EncodeToString(digest[:])))
		components = append(components, "content-digest")
	}

	if req.Header.Get("Authorization") != "" {
		components = append(components, "authorization")
	}

	var base strings.Builder
	for _, c := range components {
		switch c {
		case "@method":
			fmt.Fprintf(&base, "%q: %s\n", c, req.Method)
		case "@target-uri":
			fmt.Fprintf(&base, "%q: %s\n", c, req.URL.String())
		default:
			fmt.Fprintf(&base, "%q: %s\n", c, req.Header.Get(c))
		}
	}

	params := fmt.Sprintf("(%s);created=%d;keyid=%q;alg=\"ed25519\"",
		quoteJoin(components), time.Now().Unix(), s.keyID)
	fmt.Fprintf(&base, "%q: %s", "@signature-params", params)

	sig := ed25519.Sign(s.key, []byte(base.String()))
	req.Header.Set("Signature-Input", "sig1="+params)
	req.Header.Set("Signature", fmt.Sprintf("sig1=:%s:", base64.StdEncoding.EncodeToString(sig)))
	return nil
}

func quoteJoin(components []string) string {
	quoted := make([]string, len(components))
	for i, c := range components {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	return strings.Join(quoted, " ")
}

// ParsePrivateKey decodes a PEM-encoded PKCS#8 ed25519 private key.
func ParsePrivateKey(raw []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no pem block found")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	pk, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an ed25519 private key")
	}

	return pk, nil
}
