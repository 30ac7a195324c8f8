package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/config"
)

// runCLI выполняет команду в чистом каталоге с sqlite-базой
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE", config.StorageSQLite)
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "disabled")

	storageFlag, configFlag = "", ""
	userPassword, groupDescription = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestManageCommands(t *testing.T) {
	dir := chdirTemp(t)
	dbPath := filepath.Join(dir, "yatube.db")

	_, err := runCLI(t, dbPath, "migrate")
	require.NoError(t, err)

	out, err := runCLI(t, dbPath, "group", "create", "cats", "Cats", "--description", "All about cats")
	require.NoError(t, err)
	assert.Contains(t, out, `group "cats" created`)

	_, err = runCLI(t, dbPath, "group", "create", "cats", "Cats again")
	assert.Error(t, err)

	out, err = runCLI(t, dbPath, "user", "create", "leo", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, `user "leo" created`)

	_, err = runCLI(t, dbPath, "user", "create", "bad name!", "--password", "password123")
	assert.Error(t, err)

	cfg := &config.Config{Storage: config.StorageSQLite, DB: config.DBConfig{SQLitePath: dbPath}}
	st, err := openStores(cfg)
	require.NoError(t, err)
	defer st.Close()

	g, err := st.groups.GetGroupBySlug(context.Background(), "cats")
	require.NoError(t, err)
	assert.Equal(t, "All about cats", g.Description)

	_, err = st.users.Authenticate(context.Background(), "leo", "password123")
	assert.NoError(t, err)
}

func TestMemoryStorageIsRejectedForManage(t *testing.T) {
	dir := chdirTemp(t)
	_, err := runCLI(t, filepath.Join(dir, "unused.db"), "group", "create", "cats", "Cats", "--storage", "memory")
	assert.ErrorContains(t, err, "needs postgres or sqlite")
}

func TestOpenStoresMemory(t *testing.T) {
	st, err := openStores(&config.Config{Storage: config.StorageMemory})
	require.NoError(t, err)
	assert.Nil(t, st.db)
	assert.NoError(t, st.Close())

	svc := st.service(nil)
	feed, err := svc.IndexFeed(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}
