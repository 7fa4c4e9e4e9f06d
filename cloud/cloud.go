// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SoftbearStudios/tilegen/catalog"
	"github.com/SoftbearStudios/tilegen/config"
	"github.com/SoftbearStudios/tilegen/sink"
	"github.com/SoftbearStudios/tilegen/tile"
	jsoniter "github.com/json-iterator/go"
)

const (
	// ManifestFile lists every cataloged tile, grouped by type.
	ManifestFile = "tiles.json"

	imageCacheSeconds    = 60 * 60
	manifestCacheSeconds = 10
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means tiles are not published
type Cloud struct {
	name     string
	fs       sink.Filesystem
	database catalog.Database

	// mu orders catalog writes with manifest uploads, so the last manifest
	// uploaded always reflects every record put before it.
	mu sync.Mutex
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.name)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to the S3 bucket and DynamoDB table of cfg.Stage.
// Returns nil cloud on error
func New(cfg config.CloudConfig) (*Cloud, error) {
	if cfg.Stage == "" {
		return nil, errors.New("missing stage")
	}
	if cfg.Region == "" {
		return nil, errors.New("missing region")
	}

	session, err := getAWSSession(cfg.Region, cfg.Profile)
	if err != nil {
		return nil, err
	}

	fs, err := sink.NewS3Filesystem(session, cfg.Stage)
	if err != nil {
		return nil, err
	}
	database, err := catalog.NewDynamoDBDatabase(session, cfg.Stage)
	if err != nil {
		return nil, err
	}

	return &Cloud{
		name:     cfg.Region + " " + cfg.Stage,
		fs:       fs,
		database: database,
	}, nil
}

// NewLocal publishes into dir, cataloging into the SQLite database at sqlitePath.
// An empty sqlitePath publishes images without a catalog or manifest.
func NewLocal(dir, sqlitePath string) (*Cloud, error) {
	cloud := &Cloud{name: "local " + dir, fs: sink.NewDirectory(dir)}
	if sqlitePath != "" {
		database, err := catalog.OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		cloud.database = database
	}
	return cloud, nil
}

// NewFromParts is for callers that bring their own filesystem and database (which may be nil).
func NewFromParts(name string, fs sink.Filesystem, database catalog.Database) *Cloud {
	return &Cloud{name: name, fs: fs, database: database}
}

// ImageFile is where the image of a record is published.
func ImageFile(record catalog.Record) string {
	return record.Type + "/" + record.Name + ".png"
}

// NewRecord describes a tile generated from opts.
func NewRecord(opts tile.Options, name string) catalog.Record {
	noise := opts.Kind.String()
	if opts.Kind == tile.KindFractal {
		noise += "/" + opts.Noise.Basis.String()
	}
	shape := opts.Shape()
	return catalog.Record{
		Type:    opts.Palette.Name,
		Name:    name,
		Seed:    opts.Seed,
		Width:   shape.Width,
		Height:  shape.Height,
		Noise:   noise,
		Created: time.Now().Unix(),
	}
}

// Publish uploads an encoded image, catalogs it and refreshes the manifest.
func (cloud *Cloud) Publish(record catalog.Record, png []byte) error {
	if cloud == nil {
		return nil
	}
	if record.Type == "" || record.Name == "" {
		return errors.New("record needs a type and a name")
	}

	if err := cloud.fs.UploadStaticFile(ImageFile(record), imageCacheSeconds, png); err != nil {
		return err
	}

	if cloud.database == nil {
		return nil
	}

	cloud.mu.Lock()
	defer cloud.mu.Unlock()

	if err := cloud.database.PutRecord(record); err != nil {
		return err
	}
	return cloud.updateManifest()
}

// ManifestEntry is one tile in the manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Seed   int64  `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Noise  string `json:"noise"`
}

// Manifest groups the catalog by tile type, each group sorted by name.
func Manifest(records []catalog.Record) map[string][]ManifestEntry {
	manifest := make(map[string][]ManifestEntry)
	for _, record := range records {
		manifest[record.Type] = append(manifest[record.Type], ManifestEntry{
			Name:   record.Name,
			Image:  ImageFile(record),
			Seed:   record.Seed,
			Width:  record.Width,
			Height: record.Height,
			Noise:  record.Noise,
		})
	}
	for _, entries := range manifest {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
	}
	return manifest
}

// UpdateManifest rewrites ManifestFile from the catalog.
func (cloud *Cloud) UpdateManifest() error {
	if cloud == nil || cloud.database == nil {
		return nil
	}

	cloud.mu.Lock()
	defer cloud.mu.Unlock()
	return cloud.updateManifest()
}

func (cloud *Cloud) updateManifest() error {
	records, err := cloud.database.ReadRecords()
	if err != nil {
		return err
	}

	manifestJSON, err := json.Marshal(Manifest(records))
	if err != nil {
		return err
	}
	return cloud.fs.UploadStaticFile(ManifestFile, manifestCacheSeconds, manifestJSON)
}

// Records returns every cataloged record of a tile type.
func (cloud *Cloud) Records(tileType string) ([]catalog.Record, error) {
	if cloud == nil || cloud.database == nil {
		return nil, nil
	}
	return cloud.database.ReadRecordsByType(tileType)
}

func (cloud *Cloud) Close() error {
	if cloud == nil || cloud.database == nil {
		return nil
	}
	return cloud.database.Close()
}
