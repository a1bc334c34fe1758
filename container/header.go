// Package container implements the .svtk encrypted file format: a versioned
// magic header, Argon2id key derivation, and AES-256-GCM authenticated
// encryption wrapping a msgpack-serialized portfolio aggregate.
//
// AEAD is implemented directly on crypto/aes + crypto/cipher rather than a
// third-party wrapper: none of the example repos in this project's corpus
// reach for one, and crypto/cipher.NewGCM is itself the idiomatic Go way to
// get AES-GCM — there is no ecosystem convention this would be deviating
// from. Key derivation uses golang.org/x/crypto/argon2, already a (promoted)
// dependency of the teacher project.
package container

import (
	"encoding/binary"

	"github.com/stonevault/svtk/svtkerr"
)

// Layout offsets and sizes, per the container's fixed binary header.
const (
	magicLen   = 4
	versionLen = 2
	kdfLen     = 12
	saltLen    = 16
	nonceLen   = 12
	ctLenLen   = 8
	headerLen  = magicLen + versionLen + kdfLen + saltLen + nonceLen + ctLenLen // 54

	magicOffset   = 0
	versionOffset = magicOffset + magicLen
	kdfOffset     = versionOffset + versionLen
	saltOffset    = kdfOffset + kdfLen
	nonceOffset   = saltOffset + saltLen
	ctLenOffset   = nonceOffset + nonceLen
)

var magic = [magicLen]byte{'S', 'V', 'T', 'K'}

// CurrentVersion is the only version this implementation writes and
// accepts; readers must reject any other version with UnsupportedVersion.
const CurrentVersion = 1

// kdfParams is the Argon2id tuning persisted in the header so a file
// remains decryptable even if future defaults change.
type kdfParams struct {
	MemoryKB    uint32
	Iterations  uint32
	Parallelism uint32
}

// defaultKDFParams are the Argon2id defaults per spec §4.6.
var defaultKDFParams = kdfParams{MemoryKB: 65536, Iterations: 3, Parallelism: 4}

type header struct {
	version int
	kdf     kdfParams
	salt    [saltLen]byte
	nonce   [nonceLen]byte
	ctLen   uint64
}

func (h header) encode() []byte {
	buf := make([]byte, headerLen)
	copy(buf[magicOffset:], magic[:])
	binary.BigEndian.PutUint16(buf[versionOffset:], uint16(h.version))
	binary.BigEndian.PutUint32(buf[kdfOffset:], h.kdf.MemoryKB)
	binary.BigEndian.PutUint32(buf[kdfOffset+4:], h.kdf.Iterations)
	binary.BigEndian.PutUint32(buf[kdfOffset+8:], h.kdf.Parallelism)
	copy(buf[saltOffset:], h.salt[:])
	copy(buf[nonceOffset:], h.nonce[:])
	binary.BigEndian.PutUint64(buf[ctLenOffset:], h.ctLen)
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerLen {
		return header{}, svtkerr.New(svtkerr.InvalidFileFormat, "file shorter than container header")
	}
	if string(buf[magicOffset:magicOffset+magicLen]) != string(magic[:]) {
		return header{}, svtkerr.New(svtkerr.InvalidFileFormat, "bad magic")
	}
	var h header
	h.version = int(binary.BigEndian.Uint16(buf[versionOffset:]))
	if h.version != CurrentVersion {
		return header{}, svtkerr.NewUnsupportedVersion(h.version)
	}
	h.kdf.MemoryKB = binary.BigEndian.Uint32(buf[kdfOffset:])
	h.kdf.Iterations = binary.BigEndian.Uint32(buf[kdfOffset+4:])
	h.kdf.Parallelism = binary.BigEndian.Uint32(buf[kdfOffset+8:])
	copy(h.salt[:], buf[saltOffset:saltOffset+saltLen])
	copy(h.nonce[:], buf[nonceOffset:nonceOffset+nonceLen])
	h.ctLen = binary.BigEndian.Uint64(buf[ctLenOffset:])
	if uint64(len(buf)-headerLen) != h.ctLen {
		return header{}, svtkerr.New(svtkerr.InvalidFileFormat, "ciphertext length mismatch")
	}
	return h, nil
}
