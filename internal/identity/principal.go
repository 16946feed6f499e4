package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"
)

// ed25519DERPrefix is the ASN.1 SubjectPublicKeyInfo header for an Ed25519
// public key; the 32 raw key bytes follow it.
var ed25519DERPrefix = []byte{
	0x30, 0x2a, 0x30, 0x05, 0x06, 0x03, 0x2b, 0x65, 0x70, 0x03, 0x21, 0x00,
}

// selfAuthenticatingTag marks a principal derived from a public key.
const selfAuthenticatingTag = 0x02

// maxPrincipalBytes bounds decoded principal payloads (sha224 digest + tag).
const maxPrincipalBytes = 29

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// principalFromPublicKey computes the self-authenticating principal for an
// Ed25519 public key: sha224 over the DER-encoded key, suffixed with the
// self-authenticating tag.
func principalFromPublicKey(pub ed25519.PublicKey) []byte {
	der := make([]byte, 0, len(ed25519DERPrefix)+ed25519.PublicKeySize)
	der = append(der, ed25519DERPrefix...)
	der = append(der, pub...)

	digest := sha256.Sum224(der)
	return append(digest[:], selfAuthenticatingTag)
}

// EncodePrincipal renders principal bytes in their textual form: a big-endian
// CRC32 prefix plus the payload, base32 lowercase, dash-grouped in fives.
func EncodePrincipal(raw []byte) string {
	buf := make([]byte, 4, 4+len(raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(raw))
	buf = append(buf, raw...)

	encoded := strings.ToLower(principalEncoding.EncodeToString(buf))

	var sb strings.Builder
	for i, r := range encoded {
		if i > 0 && i%5 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// DecodePrincipal parses and checksum-verifies a textual principal, returning
// the raw payload bytes.
func DecodePrincipal(text string) ([]byte, error) {
	if text == "" {
		return nil, &InvalidPrincipalError{Principal: text, Message: "empty"}
	}

	compact := strings.ToUpper(strings.ReplaceAll(text, "-", ""))
	decoded, err := principalEncoding.DecodeString(compact)
	if err != nil {
		return nil, &InvalidPrincipalError{Principal: text, Message: "not valid base32"}
	}
	if len(decoded) < 5 {
		return nil, &InvalidPrincipalError{Principal: text, Message: "too short"}
	}

	payload := decoded[4:]
	if len(payload) > maxPrincipalBytes {
		return nil, &InvalidPrincipalError{Principal: text, Message: "payload too long"}
	}

	expected := binary.BigEndian.Uint32(decoded[:4])
	if crc32.ChecksumIEEE(payload) != expected {
		return nil, &InvalidPrincipalError{Principal: text, Message: "checksum mismatch"}
	}

	return payload, nil
}

// ValidPrincipal reports whether text is a well-formed principal.
func ValidPrincipal(text string) bool {
	_, err := DecodePrincipal(text)
	return err == nil
}
