package senders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryDirectoryAddAndLookup(t *testing.T) {
	dir := NewMemoryDirectory(nil, zap.NewNop())
	ctx := context.Background()

	known, err := dir.IsKnown(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, known)

	record, err := dir.Add(ctx, "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", record.Email)
	assert.Equal(t, "normal", record.TrustLevel)
	assert.False(t, record.CreatedAt.IsZero())

	known, err = dir.IsKnown(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestMemoryDirectoryLookupIsCaseInsensitive(t *testing.T) {
	dir := NewMemoryDirectory(nil, zap.NewNop())
	ctx := context.Background()

	_, err := dir.Add(ctx, "Alice@Example.COM", "Alice")
	require.NoError(t, err)

	known, err := dir.IsKnown(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestMemoryDirectoryAddIsIdempotent(t *testing.T) {
	dir := NewMemoryDirectory(nil, zap.NewNop())
	ctx := context.Background()

	first, err := dir.Add(ctx, "alice@example.com", "Alice")
	require.NoError(t, err)

	second, err := dir.Add(ctx, " alice@example.com ", "Different Name")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Alice", second.Name)

	list, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryDirectoryTrustedDomains(t *testing.T) {
	dir := NewMemoryDirectory([]string{"corp.example.com"}, zap.NewNop())
	ctx := context.Background()

	known, err := dir.IsKnown(ctx, "anyone@corp.example.com")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = dir.IsKnown(ctx, "anyone@other.example.com")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestMemoryDirectoryListSortedByName(t *testing.T) {
	dir := NewMemoryDirectory(nil, zap.NewNop())
	ctx := context.Background()

	_, err := dir.Add(ctx, "carol@example.com", "Carol")
	require.NoError(t, err)
	_, err = dir.Add(ctx, "alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = dir.Add(ctx, "bob@example.com", "Bob")
	require.NoError(t, err)

	list, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "Bob", list[1].Name)
	assert.Equal(t, "Carol", list[2].Name)
}
