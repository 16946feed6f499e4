// Package identity derives deterministic blockchain identities from external
// (LinkedIn) identities, so the same external user always maps to the same
// on-chain principal, and brokers the identity-provider handshake that makes
// a derived principal usable for writes.
package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"strings"
)

// seedSeparator joins the external id and email before hashing. LinkedIn
// subject ids are URL-safe tokens and addressable emails never contain a
// bare colon, so the concatenation is unambiguous.
const seedSeparator = ":"

// Identity is a derived keypair plus its principal. The private key never
// leaves this process; only the principal and signatures do.
type Identity struct {
	Principal  string
	PublicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

// Sign signs a message with the identity's private key.
func (id *Identity) Sign(message []byte) []byte {
	return ed25519.Sign(id.privateKey, message)
}

// Derive deterministically generates the identity for an external user.
// The seed is the SHA-256 digest of "externalID:email"; the same inputs yield
// the same principal across process restarts and machines.
func Derive(externalID, email string) (*Identity, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, &DerivationError{Message: "external id is required"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &DerivationError{Message: "email is required"}
	}

	seed := sha256.Sum256([]byte(externalID + seedSeparator + email))
	privateKey := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	return &Identity{
		Principal:  EncodePrincipal(principalFromPublicKey(publicKey)),
		PublicKey:  publicKey,
		privateKey: privateKey,
	}, nil
}
