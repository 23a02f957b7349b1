// Copyright (c) Elliot Nunn

// This library is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 2.1 of the License, or (at your option) any later version.

// This library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.

package stuffit

import "errors"

// Sentinel errors for every failure kind a StuffIt read can produce.
// Plain errors.New values rather than a custom error type hierarchy;
// call sites that need more context wrap them with fmt.Errorf("%w: ...", ...).
var (
	ErrBadMagic           = errors.New("stuffit: bad magic")
	ErrTruncated          = errors.New("stuffit: truncated stream")
	ErrNameTooLong        = errors.New("stuffit: entry name too long")
	ErrHeaderCRCMismatch  = errors.New("stuffit: header CRC mismatch")
	ErrEncrypted          = errors.New("stuffit: encrypted entry")
	ErrUnsupportedMethod  = errors.New("stuffit: unsupported compression method")
	ErrCorruptStream      = errors.New("stuffit: corrupt compressed stream")
	ErrPayloadCRCMismatch = errors.New("stuffit: payload CRC mismatch")
	ErrNotFound           = errors.New("stuffit: entry not found")
)
