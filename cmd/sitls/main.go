// Command sitls lists and extracts the contents of a StuffIt archive.
// It is a thin shell around the stuffit package: it does no decoding
// itself.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gostuffit/stuffit"
)

func main() {
	flatten := flag.Bool("flatten", false, "flatten the folder tree to bare file names")
	glob := flag.String("glob", "", "only list/extract entries matching this glob pattern")
	extractDir := flag.String("extract", "", "extract matching entries into this directory")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sitls [-flatten] [-glob PATTERN] [-extract DIR] ARCHIVE.sit")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *flatten, *glob, *extractDir); err != nil {
		slog.Error("sitls failed", "err", err)
		os.Exit(1)
	}
}

func run(archivePath string, flatten bool, glob, extractDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := stuffit.Open(f, stuffit.Options{FlattenTree: flatten})
	if err != nil {
		return err
	}

	for _, path := range a.List() {
		if glob != "" {
			match, err := doublestar.Match(glob, path)
			if err != nil {
				return err
			}
			if !match {
				continue
			}
		}

		fmt.Println(path)

		if extractDir == "" {
			continue
		}
		data, err := a.Read(path)
		if err != nil {
			slog.Warn("extract failed", "path", path, "err", err)
			continue
		}
		// Archive paths are colon-delimited (StuffIt's own convention,
		// not the host OS's); translate components before joining.
		dest := filepath.Join(extractDir, filepath.Join(strings.Split(path, ":")...))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
