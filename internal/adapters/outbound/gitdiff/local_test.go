package gitdiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo builds an on-disk repository one commit at a time.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) write(path, content string) {
	full := filepath.Join(r.dir, path)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

func (r *testRepo) remove(path string) {
	require.NoError(r.t, os.Remove(filepath.Join(r.dir, path)))
}

func (r *testRepo) commit(msg string) string {
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return hash.String()
}

func TestLocal_Changes(t *testing.T) {
	r := newTestRepo(t)
	r.write("src/cart.js", `client.getTreatment(userId, "old-flag");`)
	r.write("src/gone.py", "print('bye')\n")
	before := r.commit("initial")

	r.write("src/cart.js", `client.getTreatment(userId, "new-flag");`)
	r.write("src/pricing.py", `client.get_treatment(user, "pricing-test")`)
	r.remove("src/gone.py")
	after := r.commit("second")

	files, err := NewLocal(r.dir).Changes(context.Background(), before, after)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "src/cart.js", files[0].Path)
	assert.Equal(t, ".js", files[0].Extension)
	assert.Contains(t, files[0].Content, "new-flag")
	assert.Equal(t, "src/pricing.py", files[1].Path)
	assert.Equal(t, ".py", files[1].Extension)
}

func TestLocal_NoChanges(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "same\n")
	first := r.commit("initial")

	files, err := NewLocal(r.dir).Changes(context.Background(), first, first)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocal_BadRevision(t *testing.T) {
	r := newTestRepo(t)
	r.write("a.txt", "x\n")
	good := r.commit("initial")

	_, err := NewLocal(r.dir).Changes(context.Background(), "not-a-rev", good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-rev")
}

func TestLocal_NotARepo(t *testing.T) {
	_, err := NewLocal(t.TempDir()).Changes(context.Background(), "a", "b")
	require.Error(t, err)
}
