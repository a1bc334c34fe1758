package container

// Save serializes agg to msgpack and seals it under password, returning the
// bytes to write to a .svtk file.
func Save(agg Aggregate, password string) ([]byte, error) {
	plaintext, err := marshal(agg)
	if err != nil {
		return nil, err
	}
	return seal(plaintext, password)
}

// Load validates the header, decrypts with password, and deserializes the
// aggregate. Any tag failure or parse failure surfaces Decryption;
// pre-AEAD structural problems (bad magic, truncated header, unsupported
// version) surface InvalidFileFormat/UnsupportedVersion instead.
func Load(data []byte, password string) (Aggregate, error) {
	plaintext, err := open(data, password)
	if err != nil {
		return Aggregate{}, err
	}
	return unmarshal(plaintext)
}

// ChangePassword decrypts lastSeen under currentPassword (failing
// Decryption on mismatch), then re-encrypts current under newPassword,
// returning fresh bytes. current is the in-memory aggregate, which may have
// diverged from what's on disk.
func ChangePassword(lastSeen []byte, currentPassword string, current Aggregate, newPassword string) ([]byte, error) {
	if _, err := open(lastSeen, currentPassword); err != nil {
		return nil, err
	}
	return Save(current, newPassword)
}
