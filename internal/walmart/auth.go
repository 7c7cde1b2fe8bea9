// Package walmart implements retail price lookup against the Walmart
// affiliate API, which requires per-call RSA-signed request headers.
package walmart

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
)

// Signer generates the authentication headers the affiliate API expects.
type Signer struct {
	privateKey *rsa.PrivateKey
	consumerID string
	keyVersion string
	now        func() time.Time
}

// NewSigner loads a PEM-encoded RSA private key from disk.
func NewSigner(consumerID, privateKeyPath, keyVersion string) (*Signer, error) {
	if consumerID == "" {
		return nil, fmt.Errorf("%w: walmart consumer ID", common.ErrMissingConfig)
	}
	if keyVersion == "" {
		keyVersion = "1"
	}

	pemData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading private key: %v", common.ErrInvalidConfig, err)
	}

	key, err := parsePrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	return &Signer{
		privateKey: key,
		consumerID: consumerID,
		keyVersion: keyVersion,
		now:        time.Now,
	}, nil
}

func parsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("private key is not PEM encoded")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return key, nil
}

// Sign sets the WM_* auth headers on a request. The signature covers the
// canonical string consumerID + "\n" + timestamp-millis + "\n" + keyVersion
// + "\n", signed PKCS1v15 over SHA-256.
func (s *Signer) Sign(req *http.Request) error {
	timestamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	canonical := s.consumerID + "\n" + timestamp + "\n" + s.keyVersion + "\n"

	digest := sha256.Sum256([]byte(canonical))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req.Header.Set("WM_SEC.KEY_VERSION", s.keyVersion)
	req.Header.Set("WM_CONSUMER.ID", s.consumerID)
	req.Header.Set("WM_CONSUMER.INTIMESTAMP", timestamp)
	req.Header.Set("WM_SEC.AUTH_SIGNATURE", base64.StdEncoding.EncodeToString(sig))
	req.Header.Set("Accept", "application/json")

	return nil
}
