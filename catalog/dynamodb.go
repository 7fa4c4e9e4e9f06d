// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc        *dynamodb.DynamoDB
	db         *dynamo.DB
	tilesTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.tilesTable = ddb.db.Table(TableName(stage))
	return ddb, nil
}

// TableName is the tiles table of a stage. Its hash key is "type" and its range key is "name".
func TableName(stage string) string {
	return "tilegen-" + stage + "-tiles"
}

func (ddb *DynamoDBDatabase) PutRecord(record Record) error {
	return ddb.tilesTable.Put(record).Run()
}

func (ddb *DynamoDBDatabase) ReadRecords() (records []Record, err error) {
	err = ddb.tilesTable.Scan().All(&records)
	return
}

func (ddb *DynamoDBDatabase) ReadRecordsByType(tileType string) (records []Record, err error) {
	query := ddb.tilesTable.Get("type", tileType).Iter()

	for {
		var record Record
		if !query.Next(&record) {
			err = query.Err()
			return
		}
		records = append(records, record)
	}
}

func (ddb *DynamoDBDatabase) Close() error {
	return nil
}
