package container

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/argon2"

	"github.com/stonevault/svtk/svtkerr"
)

const aesKeyLen = 32 // AES-256

func deriveKey(password string, salt []byte, p kdfParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKB, uint8(p.Parallelism), aesKeyLen)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Encryption, err, "initializing AES cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Encryption, err, "initializing AES-GCM")
	}
	return gcm, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, svtkerr.Wrap(svtkerr.Encryption, err, "reading random bytes")
	}
	return b, nil
}

// seal encrypts plaintext under password with freshly drawn salt and nonce,
// returning the full header+ciphertext byte stream.
func seal(plaintext []byte, password string) ([]byte, error) {
	salt, err := randomBytes(saltLen)
	if err != nil {
		return nil, err
	}
	key := deriveKey(password, salt, defaultKDFParams)
	gcm, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	h := header{version: CurrentVersion, kdf: defaultKDFParams, ctLen: uint64(len(ciphertext))}
	copy(h.salt[:], salt)
	copy(h.nonce[:], nonce)

	return append(h.encode(), ciphertext...), nil
}

// open validates and decrypts a header+ciphertext byte stream under
// password, returning the plaintext.
func open(data []byte, password string) ([]byte, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	ciphertext := data[headerLen:]

	key := deriveKey(password, h.salt[:], h.kdf)
	gcm, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, h.nonce[:], ciphertext, nil)
	if err != nil {
		// A wrong password is indistinguishable from tampering, by design.
		return nil, svtkerr.Wrap(svtkerr.Decryption, err, "authenticating container")
	}
	return plaintext, nil
}
