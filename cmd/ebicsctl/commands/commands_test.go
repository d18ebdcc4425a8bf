package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/internal/config"
)

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	configPath, userID, traceDir, appCtx = "", "", "", nil

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ebicsctl.yaml")
	yaml := "storage:\n  type: file\n  path: " + filepath.Join(dir, "data") + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestCreateUserAndLetter(t *testing.T) {
	t.Setenv("EBICS_PASSPHRASE", "test passphrase")
	cfg := writeConfig(t)

	out, err := run(t, cfg, "create-user", "--user", "USER1",
		"--host", "EBIXHOST", "--url", "https://bank.example/ebicsweb",
		"--partner", "PARTNER1", "--name", "Jane Doe", "--signature-version", "A005")
	require.NoError(t, err)
	assert.Contains(t, out, "User USER1 created")

	out, err = run(t, cfg, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "USER1\tPARTNER1\tEBIXHOST\tINI=false HIA=false HPB=false")

	out, err = run(t, cfg, "letter", "--user", "USER1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signature key (A005")
	assert.Contains(t, out, "Authentication key (X002")
	assert.Contains(t, out, "Encryption key (E002")
	assert.NotContains(t, out, "Bank authentication key")
}

func TestCreateUserRequiresPassphrase(t *testing.T) {
	t.Setenv("EBICS_PASSPHRASE", "")
	cfg := writeConfig(t)

	_, err := run(t, cfg, "create-user", "--user", "USER1",
		"--host", "EBIXHOST", "--url", "https://bank.example", "--partner", "P1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EBICS_PASSPHRASE")
}

func TestCommandsRequireUser(t *testing.T) {
	t.Setenv("EBICS_PASSPHRASE", "test passphrase")
	cfg := writeConfig(t)

	for _, name := range []string{"ini", "hia", "hpb", "spr", "versions", "ordertypes", "letter"} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, cfg, name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--user")
		})
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := parseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), r.End)

	_, err = parseDateRange("2024-01-01", "")
	assert.Error(t, err)
	_, err = parseDateRange("2024-02-01", "2024-01-01")
	assert.Error(t, err)
	_, err = parseDateRange("yesterday", "2024-01-01")
	assert.Error(t, err)
}

func TestNewLoggerFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Info("hello", "user_id", "USER1")
	assert.Contains(t, buf.String(), `"user_id":"USER1"`)
}
