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

package database

import (
	"errors"
	"testing"

	"github.com/stakefund-io/stakefund/database/models"
	"github.com/stakefund-io/stakefund/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(nil, "", "badger", "sqlite")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return db
}

func TestDatabaseCampaignNotFound(t *testing.T) {
	db := setupTestDatabase(t)

	_, err := db.GetCampaign("nope", nil)
	assert.ErrorIs(t, err, models.ErrCampaignNotFound)
}

func TestDatabaseCampaignRoundTrip(t *testing.T) {
	db := setupTestDatabase(t)

	campaign := &models.Campaign{
		CampaignID:   "camp-1",
		Creator:      "alice",
		Name:         "Community Garden",
		TargetAmount: types.Uint64(5000),
		CreatedAt:    1700000000,
	}
	require.NoError(t, db.SetCampaign(campaign, nil))

	fetched, err := db.GetCampaign("camp-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", fetched.Creator)

	exists, err := db.CampaignExists("camp-1", nil)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = db.CampaignExists("camp-2", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDatabaseDonationWithReceipt(t *testing.T) {
	db := setupTestDatabase(t)

	donation := &models.Donation{
		DonationID: "don-1",
		CampaignID: "camp-1",
		Donor:      "bob",
		Amount:     types.Uint64(250),
		CreatedAt:  1700000100,
	}
	receipt := []byte(`{"donor":"bob","amount":250}`)
	require.NoError(t, db.AddDonation(donation, receipt, nil))

	fetched, err := db.GetDonation("don-1", nil)
	require.NoError(t, err)
	assert.Equal(t, types.Uint64(250), fetched.Amount)

	stored, err := db.GetDonationReceipt("camp-1", "don-1", nil)
	require.NoError(t, err)
	assert.Equal(t, receipt, stored)
}

func TestDatabaseTxnAtomicAcrossStores(t *testing.T) {
	db := setupTestDatabase(t)

	// A failing Do() must leave neither the metadata row nor the blob behind
	donation := &models.Donation{
		DonationID: "don-1",
		CampaignID: "camp-1",
		Donor:      "bob",
		Amount:     types.Uint64(250),
		CreatedAt:  1700000100,
	}
	bogus := errors.New("bogus")
	err := db.Transaction(true).Do(func(txn *Txn) error {
		if err := db.AddDonation(donation, []byte("receipt"), txn); err != nil {
			return err
		}
		return bogus
	})
	assert.ErrorIs(t, err, bogus)

	_, err = db.GetDonation("don-1", nil)
	assert.ErrorIs(t, err, models.ErrDonationNotFound)
	_, err = db.GetDonationReceipt("camp-1", "don-1", nil)
	assert.ErrorIs(t, err, types.ErrBlobKeyNotFound)
}

func TestDatabaseCommitTimestampUpdated(t *testing.T) {
	db := setupTestDatabase(t)

	campaign := &models.Campaign{
		CampaignID: "camp-1",
		Creator:    "alice",
		Name:       "Community Garden",
		CreatedAt:  1700000000,
	}
	err := db.Transaction(true).Do(func(txn *Txn) error {
		return db.SetCampaign(campaign, txn)
	})
	require.NoError(t, err)

	metadataTs, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	blobTs, err := db.Blob().GetCommitTimestamp()
	require.NoError(t, err)
	assert.Positive(t, metadataTs)
	assert.Equal(t, metadataTs, blobTs)

	// Stores agree, so the consistency check passes
	assert.NoError(t, db.checkCommitTimestamp())
}

func TestDatabaseDonorTotal(t *testing.T) {
	db := setupTestDatabase(t)

	amounts := []uint64{100, 50, 25}
	for i, amount := range amounts {
		donation := &models.Donation{
			DonationID: string(rune('a' + i)),
			CampaignID: "camp-1",
			Donor:      "bob",
			Amount:     types.Uint64(amount),
			CreatedAt:  1700000100 + int64(i),
		}
		require.NoError(t, db.AddDonation(donation, nil, nil))
	}
	other := &models.Donation{
		DonationID: "other",
		CampaignID: "camp-1",
		Donor:      "carol",
		Amount:     types.Uint64(1000),
		CreatedAt:  1700000200,
	}
	require.NoError(t, db.AddDonation(other, nil, nil))

	total, err := db.DonorTotal("camp-1", "bob", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(175), total)

	total, err = db.DonorTotal("camp-1", "dave", nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDatabaseDonorTotalOverflow(t *testing.T) {
	db := setupTestDatabase(t)

	for i, amount := range []uint64{18446744073709551615, 1} {
		donation := &models.Donation{
			DonationID: string(rune('a' + i)),
			CampaignID: "camp-1",
			Donor:      "bob",
			Amount:     types.Uint64(amount),
			CreatedAt:  1700000100 + int64(i),
		}
		require.NoError(t, db.AddDonation(donation, nil, nil))
	}

	_, err := db.DonorTotal("camp-1", "bob", nil)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}
