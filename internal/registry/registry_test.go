package registry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/internal/storage"
	"github.com/sirosfoundation/go-ebics/internal/storage/file"
	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

func generate(t *testing.T, v keys.Version) *keys.Key {
	t.Helper()
	k, err := keys.Generate(v, 1024)
	require.NoError(t, err)
	return k
}

func newRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := file.NewStore(dir)
	require.NoError(t, err)
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil))), dir
}

func testUser(t *testing.T) *ebics.User {
	t.Helper()
	bank := ebics.Bank{
		HostID:   "EBIXHOST",
		URL:      "https://bank.example/ebicsweb",
		Name:     "Example Bank",
		Country:  "DE",
		Versions: []ebics.ProtocolVersion{ebics.H004, "H999"},
		OrderTypes: []ordertype.OrderType{
			ordertype.Parse("STA"),
			ordertype.Parse("ZZZ"),
		},
	}
	bank = bank.WithKeys(generate(t, keys.X002).PublicOnly(), generate(t, keys.E002).PublicOnly())
	return &ebics.User{
		UserID:                 "USER1",
		Name:                   "Jane Doe",
		Partner:                ebics.Partner{PartnerID: "PARTNER1", Bank: bank},
		SignatureKey:           generate(t, keys.A006),
		AuthenticationKey:      generate(t, keys.X002),
		EncryptionKey:          generate(t, keys.E002),
		SecurityMedium:         "0100",
		SignatureKeyRegistered: true,
		Secrets:                keys.StaticSecret("correct horse battery staple"),
	}
}

func TestSaveLoadUser(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t)
	user := testUser(t)

	require.NoError(t, reg.SaveUser(ctx, user))

	got, err := reg.LoadUser(ctx, "USER1", user.Secrets)
	require.NoError(t, err)

	assert.Equal(t, user.UserID, got.UserID)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Partner.PartnerID, got.Partner.PartnerID)
	assert.Equal(t, user.SecurityMedium, got.SecurityMedium)
	assert.True(t, got.SignatureKeyRegistered)
	assert.False(t, got.AuthEncKeysRegistered)

	for _, pair := range [][2]*keys.Key{
		{user.SignatureKey, got.SignatureKey},
		{user.AuthenticationKey, got.AuthenticationKey},
		{user.EncryptionKey, got.EncryptionKey},
	} {
		require.NotNil(t, pair[1])
		assert.Equal(t, pair[0].Version(), pair[1].Version())
		assert.True(t, pair[1].HasPrivate())
		assert.True(t, pair[0].PrivateKey().Equal(pair[1].PrivateKey()))
	}

	bank := got.Bank()
	assert.Equal(t, "EBIXHOST", bank.HostID)
	assert.Equal(t, "https://bank.example/ebicsweb", bank.URL)
	assert.True(t, bank.German())
	assert.Equal(t, []ebics.ProtocolVersion{ebics.H004, "H999"}, bank.Versions)
	require.Len(t, bank.OrderTypes, 2)
	assert.Equal(t, "ZZZ", bank.OrderTypes[1].String())
	require.True(t, bank.HasKeys())
	assert.Equal(t, user.Bank().AuthenticationKey.Digest(), bank.AuthenticationKey.Digest())
	assert.False(t, bank.EncryptionKey.HasPrivate())
}

func TestLoadUserWithoutSecrets(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t)
	user := testUser(t)
	require.NoError(t, reg.SaveUser(ctx, user))

	got, err := reg.LoadUser(ctx, "USER1", nil)
	require.NoError(t, err)
	assert.False(t, got.SignatureKey.HasPrivate())
	assert.Equal(t, user.SignatureKey.Digest(), got.SignatureKey.Digest())
}

func TestLoadUserWrongSecret(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t)
	require.NoError(t, reg.SaveUser(ctx, testUser(t)))

	_, err := reg.LoadUser(ctx, "USER1", keys.StaticSecret("wrong"))
	assert.ErrorIs(t, err, keys.ErrWrongSecret)
}

func TestSaveUserRequiresSecrets(t *testing.T) {
	reg, _ := newRegistry(t)
	user := testUser(t)
	user.Secrets = nil

	err := reg.SaveUser(context.Background(), user)
	assert.ErrorIs(t, err, ErrSecretRequired)
}

func TestPrivateKeysNotStoredInClear(t *testing.T) {
	ctx := context.Background()
	reg, dir := newRegistry(t)
	require.NoError(t, reg.SaveUser(ctx, testUser(t)))

	data, err := os.ReadFile(filepath.Join(dir, "user", "USER1.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "PRIVATE KEY")
	assert.True(t, strings.Contains(string(data), "PUBLIC KEY"))
}

func TestBankWithoutKeys(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t)

	require.NoError(t, reg.SaveBank(ctx, ebics.Bank{HostID: "NOKEYS", URL: "https://nokeys.example"}))
	bank, err := reg.LoadBank(ctx, "NOKEYS")
	require.NoError(t, err)
	assert.False(t, bank.HasKeys())
	assert.Nil(t, bank.AuthenticationKey)
}

func TestUsersAndDelete(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t)
	user := testUser(t)
	require.NoError(t, reg.SaveUser(ctx, user))

	ids, err := reg.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"USER1"}, ids)

	require.NoError(t, reg.DeleteUser(ctx, "USER1"))
	_, err = reg.LoadUser(ctx, "USER1", user.Secrets)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = reg.LoadBank(ctx, "EBIXHOST")
	assert.NoError(t, err)
}

func TestLoadUserMissing(t *testing.T) {
	reg, _ := newRegistry(t)
	_, err := reg.LoadUser(context.Background(), "NOBODY", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
