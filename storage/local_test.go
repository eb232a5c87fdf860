package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveOpenDelete(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := "some file bytes"

	require.NoError(t, l.Save(ctx, "1/abc.txt", strings.NewReader(content), int64(len(content)), "text/plain"))

	r, err := l.Open(ctx, "1/abc.txt")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, content, string(got))

	require.NoError(t, l.Delete(ctx, "1/abc.txt"))

	_, err = l.Open(ctx, "1/abc.txt")
	assert.Error(t, err)
}

func TestLocal_DeleteMissingKey(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, l.Delete(context.Background(), "1/never-existed.txt"))
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	err = l.Save(ctx, "../outside.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	_, err = l.Open(ctx, "../../etc/passwd")
	assert.Error(t, err)
}
