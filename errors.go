// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tilegen generates small procedural tile images by mapping a noise field
// through a weighted color palette.
//
// Generation is split into a noise field generator (package noise), a categorical
// synthesizer (packages palette and tile) and sinks that encode or publish the result.
package tilegen

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every validation failure of the generation core.
// Validation always happens before any output is produced.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
