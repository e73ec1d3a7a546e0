package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	storage, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestNewSQLiteStorage(t *testing.T) {
	storage := newTestStorage(t)
	require.NotNil(t, storage.db)

	stats, err := storage.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["total_profiles"])
}

func TestSQLiteStorage_SaveAndLoadProfile(t *testing.T) {
	storage := newTestStorage(t)

	profile := CredentialProfile{
		Name:        "sandbox",
		MerchantKey: "a4vGC2",
		Salt:        "hKvGJP28d2ZUuCRz5BnDag58QBdCxBli",
		Description: "Shared test pair",
	}
	require.NoError(t, storage.SaveProfile(profile))

	loaded, err := storage.LoadProfile("sandbox")
	require.NoError(t, err)
	assert.Equal(t, profile.Name, loaded.Name)
	assert.Equal(t, profile.MerchantKey, loaded.MerchantKey)
	assert.Equal(t, profile.Salt, loaded.Salt)
	assert.Equal(t, profile.Description, loaded.Description)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestSQLiteStorage_SaveProfile_Upsert(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveProfile(CredentialProfile{
		Name: "sandbox", MerchantKey: "oldKey", Salt: "oldSalt",
	}))
	require.NoError(t, storage.SaveProfile(CredentialProfile{
		Name: "sandbox", MerchantKey: "newKey", Salt: "newSalt",
	}))

	loaded, err := storage.LoadProfile("sandbox")
	require.NoError(t, err)
	assert.Equal(t, "newKey", loaded.MerchantKey)
	assert.Equal(t, "newSalt", loaded.Salt)

	stats, err := storage.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["total_profiles"])
}

func TestSQLiteStorage_SaveProfile_Validation(t *testing.T) {
	storage := newTestStorage(t)

	assert.Error(t, storage.SaveProfile(CredentialProfile{MerchantKey: "k", Salt: "s"}))
	assert.Error(t, storage.SaveProfile(CredentialProfile{Name: "x", Salt: "s"}))
	assert.Error(t, storage.SaveProfile(CredentialProfile{Name: "x", MerchantKey: "k"}))
}

func TestSQLiteStorage_LoadProfile_NotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.LoadProfile("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestSQLiteStorage_LoadAllProfiles(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveProfile(CredentialProfile{Name: "b-profile", MerchantKey: "k2", Salt: "s2"}))
	require.NoError(t, storage.SaveProfile(CredentialProfile{Name: "a-profile", MerchantKey: "k1", Salt: "s1"}))

	profiles, err := storage.LoadAllProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "a-profile", profiles[0].Name)
	assert.Equal(t, "b-profile", profiles[1].Name)
}

func TestSQLiteStorage_DeleteProfile(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveProfile(CredentialProfile{Name: "sandbox", MerchantKey: "k", Salt: "s"}))
	require.NoError(t, storage.DeleteProfile("sandbox"))

	_, err := storage.LoadProfile("sandbox")
	assert.Error(t, err)

	err = storage.DeleteProfile("sandbox")
	require.Error(t, err, "second delete must report not found")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
