package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_AddListGetUpdateDelete(t *testing.T) {
	fc := newFakeClient()
	v := NewVaultService(fc)
	key := testKey(t, "master")
	ctx := context.Background()

	rec := cryptox.Record{Site: "github.com", Username: "alice", Password: "hunter22"}
	item, err := v.Add(ctx, key, rec)
	require.NoError(t, err)
	assert.Equal(t, rec, item.Record)

	// The fake server holds only ciphertext.
	stored := fc.records[item.ID]
	assert.NotContains(t, string(stored.Envelope.Ciphertext), "hunter22")
	assert.Len(t, stored.Envelope.Nonce, cryptox.NonceSize)

	items, err := v.List(ctx, key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rec, items[0].Record)

	rec.Password = "correct horse"
	_, err = v.Update(ctx, key, item.ID, rec)
	require.NoError(t, err)

	got, err := v.Get(ctx, key, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", got.Password)

	require.NoError(t, v.Delete(ctx, item.ID))
	_, err = v.Get(ctx, key, item.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, v.Delete(ctx, item.ID), common.ErrNotFound)
}

func TestVault_ListKeepsServerOrder(t *testing.T) {
	fc := newFakeClient()
	v := NewVaultService(fc)
	key := testKey(t, "master")
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		_, err := v.Add(ctx, key, cryptox.Record{Site: fmt.Sprintf("site-%02d", i), Username: "u", Password: "p"})
		require.NoError(t, err)
	}

	items, err := v.List(ctx, key)
	require.NoError(t, err)
	require.Len(t, items, 40)
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("site-%02d", i), it.Site)
	}
}

func TestVault_ListIsAllOrNothing(t *testing.T) {
	fc := newFakeClient()
	v := NewVaultService(fc)
	key := testKey(t, "master")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := v.Add(ctx, key, cryptox.Record{Site: "s", Username: "u", Password: "p"})
		require.NoError(t, err)
	}
	fc.records["r3"].Envelope.Ciphertext[0] ^= 1

	items, err := v.List(ctx, key)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "r3")
}

func TestVault_WrongKeyFails(t *testing.T) {
	fc := newFakeClient()
	v := NewVaultService(fc)
	ctx := context.Background()

	_, err := v.Add(ctx, testKey(t, "right"), cryptox.Record{Site: "s", Username: "u", Password: "p"})
	require.NoError(t, err)

	_, err = v.List(ctx, testKey(t, "wrong"))
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestVault_LockedKey(t *testing.T) {
	fc := newFakeClient()
	v := NewVaultService(fc)
	ctx := context.Background()

	_, err := v.List(ctx, nil)
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	key := testKey(t, "master")
	key.Destroy()
	_, err = v.Add(ctx, key, cryptox.Record{Site: "s", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, common.ErrVaultLocked)
	_, err = v.Update(ctx, key, "r1", cryptox.Record{})
	assert.ErrorIs(t, err, common.ErrVaultLocked)
	assert.Empty(t, fc.records, "nothing is sent without a key")
}

func TestVault_ClientErrors(t *testing.T) {
	fc := newFakeClient()
	fc.ListErr = errBoom{}
	fc.AddErr = errBoom{}
	v := NewVaultService(fc)
	key := testKey(t, "master")
	ctx := context.Background()

	_, err := v.List(ctx, key)
	assert.EqualError(t, err, "list error: boom")
	_, err = v.Add(ctx, key, cryptox.Record{Site: "s", Username: "u", Password: "p"})
	assert.EqualError(t, err, "add error: boom")
	_, err = v.Update(ctx, key, "missing", cryptox.Record{Site: "s", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
