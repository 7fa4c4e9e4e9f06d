// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sink

// Filesystem stores encoded tiles and manifests.
type Filesystem interface {
	UploadStaticFile(filename string, secondsCache int, data []byte) error
}
