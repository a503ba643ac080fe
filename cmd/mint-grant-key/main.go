// Package main provides a one-shot utility for mint-grant key generation and
// grant signing.
//
// Run without flags it emits the asymmetric keypair used by privileged mint
// checks; with -issue it signs a grant for the given mint parameters.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/louisbranch/emberarena/internal/platform/config"
	"github.com/louisbranch/emberarena/internal/tools/mintgrant"
)

func main() {
	var issue bool
	var key, issuer, audience, subject, owner, category, rarity string
	var ttl time.Duration

	flag.BoolVar(&issue, "issue", false, "sign a grant instead of generating keys")
	flag.StringVar(&key, "key", os.Getenv("EMBERARENA_MINT_GRANT_PRIVATE_KEY"), "base64 signing key (default: EMBERARENA_MINT_GRANT_PRIVATE_KEY)")
	flag.StringVar(&issuer, "issuer", "", "grant issuer")
	flag.StringVar(&audience, "audience", "", "grant audience")
	flag.StringVar(&subject, "subject", "", "admin identity the grant acts as")
	flag.StringVar(&owner, "owner", "", "identity receiving the minted item")
	flag.StringVar(&category, "category", "", "equipment category")
	flag.StringVar(&rarity, "rarity", "", "equipment rarity")
	flag.DurationVar(&ttl, "ttl", time.Hour, "grant lifetime")
	flag.Parse()

	if !issue {
		if err := mintgrant.RunKeygen(os.Stdout, nil); err != nil {
			config.Exitf("generate mint grant key: %v", err)
		}
		return
	}

	err := mintgrant.RunIssue(os.Stdout, mintgrant.IssueRequest{
		PrivateKey: key,
		Issuer:     issuer,
		Audience:   audience,
		Subject:    subject,
		Owner:      owner,
		Category:   category,
		Rarity:     rarity,
		TTL:        ttl,
	})
	if err != nil {
		config.Exitf("issue mint grant: %v", err)
	}
}
