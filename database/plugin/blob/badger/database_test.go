// Copyright 2025 Stakefund Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"fmt"
	"testing"

	"github.com/stakefund-io/stakefund/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *BlobStoreBadger {
	t.Helper()
	store, err := New(WithGc(false))
	require.NoError(t, err, "failed to create test store")
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test store: %v", err)
		}
	})
	return store
}

func TestBlobSetGet(t *testing.T) {
	store := setupTestStore(t)

	txn := store.NewTransaction(true)
	require.NoError(t, store.Set(txn, []byte("receipt/camp-1/don-1"), []byte("payload")))
	require.NoError(t, txn.Commit())

	readTxn := store.NewTransaction(false)
	defer readTxn.Rollback() //nolint:errcheck
	val, err := store.Get(readTxn, []byte("receipt/camp-1/don-1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)
}

func TestBlobGetMissing(t *testing.T) {
	store := setupTestStore(t)

	txn := store.NewTransaction(false)
	defer txn.Rollback() //nolint:errcheck
	_, err := store.Get(txn, []byte("nope"))
	assert.ErrorIs(t, err, types.ErrBlobKeyNotFound)
}

func TestBlobRollbackDiscardsWrites(t *testing.T) {
	store := setupTestStore(t)

	txn := store.NewTransaction(true)
	require.NoError(t, store.Set(txn, []byte("key"), []byte("value")))
	require.NoError(t, txn.Rollback())

	readTxn := store.NewTransaction(false)
	defer readTxn.Rollback() //nolint:errcheck
	_, err := store.Get(readTxn, []byte("key"))
	assert.ErrorIs(t, err, types.ErrBlobKeyNotFound)
}

func TestBlobTxnValidation(t *testing.T) {
	store := setupTestStore(t)
	other := setupTestStore(t)

	// Nil transaction
	_, err := store.Get(nil, []byte("key"))
	assert.ErrorIs(t, err, types.ErrNilTxn)

	// Transaction from a different store
	otherTxn := other.NewTransaction(false)
	defer otherTxn.Rollback() //nolint:errcheck
	_, err = store.Get(otherTxn, []byte("key"))
	assert.Error(t, err)

	// Finished transaction
	txn := store.NewTransaction(true)
	require.NoError(t, txn.Commit())
	_, err = store.Get(txn, []byte("key"))
	assert.Error(t, err)
}

func TestBlobIteratorPrefix(t *testing.T) {
	store := setupTestStore(t)

	txn := store.NewTransaction(true)
	for i := range 3 {
		key := fmt.Sprintf("receipt/camp-1/don-%d", i)
		require.NoError(t, store.Set(txn, []byte(key), []byte{byte(i)}))
	}
	require.NoError(t, store.Set(txn, []byte("receipt/camp-2/don-0"), []byte{9}))
	require.NoError(t, txn.Commit())

	readTxn := store.NewTransaction(false)
	defer readTxn.Rollback() //nolint:errcheck
	prefix := []byte("receipt/camp-1/")
	iter := store.NewIterator(readTxn, types.BlobIteratorOptions{Prefix: prefix})
	defer iter.Close()
	var count int
	for iter.Rewind(); iter.ValidForPrefix(prefix); iter.Next() {
		count++
	}
	require.NoError(t, iter.Err())
	assert.Equal(t, 3, count)
}

func TestBlobCommitTimestamp(t *testing.T) {
	store := setupTestStore(t)

	txn := store.NewTransaction(true)
	require.NoError(t, store.SetCommitTimestamp(1700000000123, txn))
	require.NoError(t, txn.Commit())

	ts, err := store.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), ts)
}
