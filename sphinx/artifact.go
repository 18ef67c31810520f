/*
 * artifact.go, part of gospx.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sphinx

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//artifact is a file produced by SPHInX, possibly compressed, open for
//reading. Closing it closes the decompressor and the file.
type artifact struct {
	io.Reader
	name   string
	f      *os.File
	closer func()
}

func (a *artifact) Close() error {
	if a.closer != nil {
		a.closer()
	}
	return a.f.Close()
}

//Compressed variants of the artifacts, in the order they are looked for.
var compressedSuffixes = []string{".zst", ".gz"}

//openArtifact opens the file name or, if it doesn't exist, its compressed
//version, name.zst or name.gz. The returned error wraps fs.ErrNotExist if
//none of them exists.
func openArtifact(name string) (*artifact, error) {
	candidates := append([]string{name}, name+compressedSuffixes[0], name+compressedSuffixes[1])
	var f *os.File
	var err error
	var found string
	for _, c := range candidates {
		f, err = os.Open(c)
		if err == nil {
			found = c
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if f == nil {
		return nil, err
	}
	a := &artifact{name: found, f: f}
	intermediate := bufio.NewReader(f)
	switch {
	case strings.HasSuffix(found, ".zst"):
		r, err := zstd.NewReader(intermediate)
		if err != nil {
			f.Close()
			return nil, err
		}
		a.Reader = r
		a.closer = r.Close
	case strings.HasSuffix(found, ".gz"):
		r, err := gzip.NewReader(intermediate)
		if err != nil {
			f.Close()
			return nil, err
		}
		a.Reader = r
		a.closer = func() { r.Close() }
	default:
		a.Reader = intermediate
	}
	return a, nil
}
