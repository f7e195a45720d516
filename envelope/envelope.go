package envelope

import (
	"crypto/rsa"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"

	"github.com/vcon-dev/fake-vcons/vcon"
)

// ContentType is the media type recorded in envelope headers.
const ContentType = "application/vcon"

var (
	// ErrNotSigned is returned when Verify is given a document that is not
	// a signed envelope.
	ErrNotSigned = fmt.Errorf("document is not a signed vcon")
	// ErrNotEncrypted is returned when Decrypt is given a document that is
	// not an encrypted envelope.
	ErrNotEncrypted = fmt.Errorf("document is not an encrypted vcon")
)

// Sign wraps the container in a JWS JSON serialization signed with RS256.
// The payload is the canonical compact encoding of the container.
func Sign(v *vcon.Vcon, key *rsa.PrivateKey) ([]byte, error) {
	payload, err := v.Encode()
	if err != nil {
		return nil, err
	}
	opts := (&jose.SignerOptions{}).WithContentType(ContentType)
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.RS256, Key: key}, opts)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	obj, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("sign vcon: %w", err)
	}
	return []byte(obj.FullSerialize()), nil
}

// Verify checks the envelope signature against the public key and returns
// the unwrapped container. Tampered payloads and mismatched keys fail.
func Verify(data []byte, key *rsa.PublicKey) (*vcon.Vcon, error) {
	if vcon.DetectForm(data) != vcon.FormSigned {
		return nil, ErrNotSigned
	}
	obj, err := jose.ParseSigned(string(data), []jose.SignatureAlgorithm{jose.RS256})
	if err != nil {
		return nil, fmt.Errorf("parse signed vcon: %w", err)
	}
	payload, err := obj.Verify(key)
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}
	return vcon.Decode(payload)
}

// Encrypt wraps the container in a JWE JSON serialization for the holder of
// the matching private key (RSA-OAEP key wrap, A256GCM content encryption).
func Encrypt(v *vcon.Vcon, key *rsa.PublicKey) ([]byte, error) {
	payload, err := v.Encode()
	if err != nil {
		return nil, err
	}
	opts := (&jose.EncrypterOptions{}).WithContentType(ContentType)
	enc, err := jose.NewEncrypter(jose.A256GCM, jose.Recipient{Algorithm: jose.RSA_OAEP, Key: key}, opts)
	if err != nil {
		return nil, fmt.Errorf("create encrypter: %w", err)
	}
	obj, err := enc.Encrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("encrypt vcon: %w", err)
	}
	return []byte(obj.FullSerialize()), nil
}

// Decrypt unwraps an encrypted envelope with the private key and returns the
// plaintext container.
func Decrypt(data []byte, key *rsa.PrivateKey) (*vcon.Vcon, error) {
	if vcon.DetectForm(data) != vcon.FormEncrypted {
		return nil, ErrNotEncrypted
	}
	obj, err := jose.ParseEncrypted(string(data), []jose.KeyAlgorithm{jose.RSA_OAEP}, []jose.ContentEncryption{jose.A256GCM})
	if err != nil {
		return nil, fmt.Errorf("parse encrypted vcon: %w", err)
	}
	payload, err := obj.Decrypt(key)
	if err != nil {
		return nil, fmt.Errorf("decrypt vcon: %w", err)
	}
	return vcon.Decode(payload)
}
