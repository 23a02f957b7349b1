// Copyright (c) Elliot Nunn

// This library is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 2.1 of the License, or (at your option) any later version.

// This library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.

// Package stuffit is a read-only decoder for the classic Macintosh
// StuffIt archive container, including compression methods 0 (verbatim),
// 13 ("TableHuff"), and 14 ("Installer").
package stuffit

import (
	"io"
	"sort"
)

// Archive is an opened, read-only StuffIt archive. It is safe for
// concurrent reads of different entries; each read allocates its own
// decoder state.
type Archive struct {
	backing io.ReaderAt
	opts    Options
	ix      *index
	id      uint64
	cache   *forkCache
}

// Open parses a StuffIt container from backing and returns a read-only
// handle. A malformed header, bad magic, or truncated entry table fails
// the whole open; per-entry decode failures are reported later, from
// Read/ReadResourceFork, and never invalidate the handle.
func Open(backing io.ReaderAt, opts Options) (*Archive, error) {
	ix, err := parseContainer(backing, opts)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		backing: backing,
		opts:    opts,
		ix:      ix,
		id:      nextArchiveID(),
	}
	if opts.CacheDecodedForks {
		c, err := newForkCache()
		if err != nil {
			return nil, err
		}
		a.cache = c
	}
	return a, nil
}

// Has reports whether path is present in the archive index.
func (a *Archive) Has(path string) bool {
	_, ok := a.ix.entries[pathKey(path)]
	return ok
}

// List returns every entry path, sorted.
func (a *Archive) List() []string {
	out := make([]string, 0, len(a.ix.display))
	for _, p := range a.ix.display {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Read returns the decompressed data fork of path. An absent data fork
// (uncompressed_size == 0) yields an empty, non-nil byte slice -- distinct
// from ReadResourceFork's absent signal for the same case.
func (a *Archive) Read(path string) ([]byte, error) {
	entry, ok := a.lookup(path)
	if !ok {
		return nil, ErrNotFound
	}
	if entry.DataFork.Empty() {
		return []byte{}, nil
	}
	return a.readFork(entry.DataFork)
}

// ReadResourceFork returns the decompressed resource fork of path, or
// (nil, false) if the entry has no resource fork.
func (a *Archive) ReadResourceFork(path string) ([]byte, bool, error) {
	entry, ok := a.lookup(path)
	if !ok {
		return nil, false, ErrNotFound
	}
	if entry.ResFork.Empty() {
		return nil, false, nil
	}
	b, err := a.readFork(entry.ResFork)
	if err != nil {
		return nil, true, err
	}
	return b, true, nil
}

// ReadFinderInfo returns the 16-byte Finder metadata block recorded for
// path at open time.
func (a *Archive) ReadFinderInfo(path string) (FinderInfo, error) {
	fi, ok := a.ix.metadata[pathKey(path)]
	if !ok {
		return FinderInfo{}, ErrNotFound
	}
	return fi, nil
}

func (a *Archive) lookup(path string) (FileEntry, bool) {
	e, ok := a.ix.entries[pathKey(path)]
	return e, ok
}

func (a *Archive) readFork(fork ForkDescriptor) ([]byte, error) {
	if a.cache != nil {
		if b, ok := a.cache.get(a.id, fork.Offset); ok {
			return b, nil
		}
	}
	b, err := decompressFork(a.backing, fork)
	if err != nil {
		return nil, err
	}
	if a.cache != nil {
		a.cache.put(a.id, fork.Offset, b)
	}
	return b, nil
}
