// Package mintgrant generates the keypair and signed grants used by the
// privileged mint flow.
package mintgrant

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/emberarena/internal/arena/admin"
)

// RunKeygen generates a mint grant key pair and writes exports.
func RunKeygen(out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate mint grant key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export EMBERARENA_MINT_GRANT_PRIVATE_KEY=%s\n", base64.RawStdEncoding.EncodeToString(privateKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "export %s=%s\n", admin.EnvMintGrantPublicKey, base64.RawStdEncoding.EncodeToString(publicKey)); err != nil {
		return err
	}
	return nil
}

// IssueRequest describes one grant to sign.
type IssueRequest struct {
	PrivateKey string
	Issuer     string
	Audience   string
	Subject    string
	Owner      string
	Category   string
	Rarity     string
	TTL        time.Duration
}

// RunIssue signs a mint grant and writes the token.
func RunIssue(out io.Writer, req IssueRequest) error {
	if out == nil {
		return errors.New("output is required")
	}
	keyBytes, err := base64.RawStdEncoding.DecodeString(req.PrivateKey)
	if err != nil {
		keyBytes, err = base64.StdEncoding.DecodeString(req.PrivateKey)
	}
	if err != nil {
		return fmt.Errorf("decode private key: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return fmt.Errorf("private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if req.TTL <= 0 {
		req.TTL = time.Hour
	}

	cfg := admin.MintGrantConfig{Issuer: req.Issuer, Audience: req.Audience}
	grant, err := admin.IssueMintGrant(ed25519.PrivateKey(keyBytes), cfg, req.Subject, uuid.NewString(), admin.MintGrantExpectation{
		Owner:    req.Owner,
		Category: req.Category,
		Rarity:   req.Rarity,
	}, req.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, grant)
	return err
}
