package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed value format.
	envelopeFormatVersion = 1
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errUnsealable = errors.New("wrong passphrase or corrupted value")
)

// kdfParams are the scrypt cost parameters recorded with every sealed value.
type kdfParams struct {
	N, R, P int
}

// Tunables for scrypt key derivation.
func kdfParamsDefault() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// envelope is the stored JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into a JSON envelope.
// The key is bound to the stored key name through the AEAD additional data.
func seal(passphrase, name string, raw []byte, params kdfParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer clear(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is single use
	ct := aead.Seal(nil, nonce[:], raw, additionalData(name, salt[:]))

	return json.Marshal(envelope{
		V:      envelopeFormatVersion,
		Salt:   salt[:],
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
}

// open decrypts an envelope produced by seal.
func open(passphrase, name string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.V != envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer clear(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, additionalData(name, env.Salt))
	if err != nil {
		return nil, errUnsealable
	}
	return pt, nil
}

func additionalData(name string, salt []byte) []byte {
	return append([]byte(name+"|"), salt...)
}
