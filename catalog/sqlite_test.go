// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func openTemp(t *testing.T) *SQLiteDatabase {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open catalog: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "catalog.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("catalog file was not created")
	}
}

func TestSQLite_PutAndRead(t *testing.T) {
	db := openTemp(t)

	records := []Record{
		{Type: "grass", Name: "grass_1.png", Seed: 1, Width: 64, Height: 64, Noise: "uniform", Created: 100},
		{Type: "grass", Name: "grass_0.png", Seed: 0, Width: 64, Height: 64, Noise: "uniform", Created: 100},
		{Type: "dirt", Name: "dirt_0.png", Seed: 7, Width: 32, Height: 16, Noise: "fractal/perlin", Created: 200},
	}
	for _, r := range records {
		if err := db.PutRecord(r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.ReadRecords()
	if err != nil {
		t.Fatal(err)
	}
	expected := []Record{records[2], records[1], records[0]}
	if !reflect.DeepEqual(all, expected) {
		t.Errorf("ReadRecords() = %+v, want %+v", all, expected)
	}

	grass, err := db.ReadRecordsByType("grass")
	if err != nil {
		t.Fatal(err)
	}
	if len(grass) != 2 || grass[0].Name != "grass_0.png" {
		t.Errorf("ReadRecordsByType(grass) = %+v", grass)
	}

	none, err := db.ReadRecordsByType("lava")
	if err != nil || len(none) != 0 {
		t.Errorf("ReadRecordsByType(lava) = %+v, %v", none, err)
	}
}

func TestSQLite_PutReplaces(t *testing.T) {
	db := openTemp(t)

	r := Record{Type: "sand", Name: "sand_0.png", Seed: 1, Width: 8, Height: 8, Created: 1}
	if err := db.PutRecord(r); err != nil {
		t.Fatal(err)
	}
	r.Seed = 2
	r.Created = 2
	if err := db.PutRecord(r); err != nil {
		t.Fatal(err)
	}

	records, err := db.ReadRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Seed != 2 {
		t.Errorf("PutRecord expected replacement, got %+v", records)
	}
}

func TestTableName(t *testing.T) {
	if got := TableName("prod"); got != "tilegen-prod-tiles" {
		t.Error("TableName(prod) expected tilegen-prod-tiles got", got)
	}
}
