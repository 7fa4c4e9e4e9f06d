// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

type Database interface {
	PutRecord(record Record) error
	ReadRecords() (records []Record, err error)
	ReadRecordsByType(tileType string) (records []Record, err error)
	Close() error
}
