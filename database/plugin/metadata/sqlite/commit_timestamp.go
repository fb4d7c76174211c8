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

package sqlite

import (
	"errors"

	"github.com/stakefund-io/stakefund/database/types"
	"gorm.io/gorm"
)

// CommitTimestamp tracks the last commit shared between the blob and
// metadata stores, used to detect partial writes across them on startup
type CommitTimestamp struct {
	ID        uint `gorm:"primarykey"`
	Timestamp int64
}

// TableName returns the table name
func (CommitTimestamp) TableName() string {
	return "commit_timestamp"
}

// GetCommitTimestamp returns the stored commit timestamp, or -1 if unset
func (d *MetadataStoreSqlite) GetCommitTimestamp() (int64, error) {
	var tmpCommitTimestamp CommitTimestamp
	if result := d.db.First(&tmpCommitTimestamp); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return -1, nil
		}
		return 0, result.Error
	}
	return tmpCommitTimestamp.Timestamp, nil
}

// SetCommitTimestamp stores the commit timestamp inside the given transaction
func (d *MetadataStoreSqlite) SetCommitTimestamp(
	timestamp int64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	tmpCommitTimestamp := CommitTimestamp{
		ID:        1,
		Timestamp: timestamp,
	}
	if result := db.Save(&tmpCommitTimestamp); result.Error != nil {
		return result.Error
	}
	return nil
}
