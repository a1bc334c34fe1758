package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonevault/svtk/svtkerr"
)

func sampleAggregate() Aggregate {
	return Aggregate{
		Settings: Settings{DefaultCurrency: "USD", APIKeys: map[string]string{"alphavantage": "key123"}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	agg := sampleAggregate()
	data, err := Save(agg, "correct horse battery staple")
	require.NoError(t, err)

	loaded, err := Load(data, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, agg.Settings, loaded.Settings)
}

func TestLoadWrongPasswordFailsDecryption(t *testing.T) {
	data, err := Save(sampleAggregate(), "right-password")
	require.NoError(t, err)

	_, err = Load(data, "wrong-password")
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.Decryption))
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data, err := Save(sampleAggregate(), "pw")
	require.NoError(t, err)
	corrupted := append([]byte(nil), data...)
	corrupted[0] = 'X'

	_, err = Load(corrupted, "pw")
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.InvalidFileFormat))
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	data, err := Save(sampleAggregate(), "pw")
	require.NoError(t, err)
	corrupted := append([]byte(nil), data...)
	corrupted[versionOffset] = 0
	corrupted[versionOffset+1] = 9

	_, err = Load(corrupted, "pw")
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.UnsupportedVersion))
}

func TestUnmarshalCorruptPlaintextReportsDecryption(t *testing.T) {
	// Per spec, a structurally invalid plaintext that still passes AEAD
	// authentication must report the same error kind as a wrong password,
	// so the two failure modes stay indistinguishable to callers.
	_, err := unmarshal([]byte("not valid msgpack"))
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.Decryption))
	assert.False(t, svtkerr.Is(err, svtkerr.Deserialization))
}

func TestChangePassword(t *testing.T) {
	agg := sampleAggregate()
	original, err := Save(agg, "old-password")
	require.NoError(t, err)

	updated, err := ChangePassword(original, "old-password", agg, "new-password")
	require.NoError(t, err)

	loaded, err := Load(updated, "new-password")
	require.NoError(t, err)
	assert.Equal(t, agg.Settings, loaded.Settings)

	_, err = Load(updated, "old-password")
	require.Error(t, err)
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	agg := sampleAggregate()
	original, err := Save(agg, "old-password")
	require.NoError(t, err)

	_, err = ChangePassword(original, "not-the-password", agg, "new-password")
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.Decryption))
}
