package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/leads/internal/auth"
	"github.com/umalmyha/leads/internal/config"
	"github.com/umalmyha/leads/internal/infra"
	"github.com/umalmyha/leads/internal/model"
)

func setupStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.StoreDriverKv)
	t.Setenv("KV_DRIVER", config.KvDriverSqlite)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "leads.db"))
	t.Setenv("EXPORT_TIMEZONE", "UTC")
	t.Setenv("AMQP_URL", "")

	cfg, err := config.Build()
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	storage, err := infra.BuildStorage(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer storage.Close()

	createdAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	for _, r := range []*model.Requirement{
		{ID: "01HS0000000000000000000001", Name: "Ann Lee", Mobile: "9876543210", Budget: 7500000, PreferredLocation: "Sarjapur", Status: model.StatusNew, CreatedAt: createdAt},
		{ID: "01HS0000000000000000000002", Name: "Ravi Kumar", Mobile: "6000000000", Budget: 4000000, PreferredLocation: "Hebbal", Status: model.StatusNew, CreatedAt: createdAt.Add(time.Hour)},
	} {
		require.NoError(t, storage.Requirements.Create(context.Background(), r))
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	setupStore(t)

	out, err := run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Ann Lee")
	require.Contains(t, out, "Ravi Kumar")
	require.Contains(t, out, "2 requirement(s)")
	require.Less(t, strings.Index(out, "Ravi Kumar"), strings.Index(out, "Ann Lee"), "newest must come first")

	out, err = run(t, "", "list", "--min-budget", "5000000")
	require.NoError(t, err)
	require.Contains(t, out, "Ann Lee")
	require.NotContains(t, out, "Ravi Kumar")

	_, err = run(t, "", "list", "--sort", "name")
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	setupStore(t)
	id := "01HS0000000000000000000001"

	t.Log("contacting doesn't ask")
	{
		out, err := run(t, "", "status", id, "Contacted")
		require.NoError(t, err)
		require.Contains(t, out, "is Contacted")
	}

	t.Log("declined close")
	{
		out, err := run(t, "n\n", "status", id, "Closed")
		require.NoError(t, err)
		require.Contains(t, out, "[y/N]")
		require.Contains(t, out, "Cancelled")

		out, err = run(t, "", "list", "--status", "Contacted")
		require.NoError(t, err)
		require.Contains(t, out, "1 requirement(s)")
	}

	t.Log("accepted close")
	{
		out, err := run(t, "y\n", "status", id, "Closed")
		require.NoError(t, err)
		require.Contains(t, out, "is Closed")
	}

	t.Log("closed lead can't be reopened")
	{
		_, err := run(t, "", "status", id, "New", "--yes")
		require.Error(t, err)
	}
}

func TestDelete(t *testing.T) {
	setupStore(t)
	id := "01HS0000000000000000000002"

	out, err := run(t, "", "delete", id)
	require.NoError(t, err, "no answer means no")
	require.Contains(t, out, "Cancelled")

	out, err = run(t, "", "delete", id, "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "deleted")

	out, err = run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "1 requirement(s)")
}

func TestExport(t *testing.T) {
	setupStore(t)
	path := filepath.Join(t.TempDir(), "leads.csv")

	out, err := run(t, "", "export", "--out", path, "--sort", "budget", "--order", "asc")
	require.NoError(t, err)
	require.Contains(t, out, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Ravi Kumar", rows[1][0])
	require.Equal(t, "3/5/2024", rows[1][7])

	t.Log("empty selection leaves no file behind")
	{
		empty := filepath.Join(t.TempDir(), "empty.csv")
		_, err := run(t, "", "export", "--out", empty, "--search", "mysore")
		require.Error(t, err)

		_, statErr := os.Stat(empty)
		require.True(t, os.IsNotExist(statErr))
	}
}

func TestChallenge(t *testing.T) {
	setupStore(t)

	out, err := run(t, "", "challenge")
	require.NoError(t, err)
	require.Contains(t, out, "What is")
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "", "hash-password", "s3cret")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	require.True(t, auth.NewBcryptVerifier("admin@company.com", hash).Verify("admin@company.com", "s3cret"))
}
