// Package rawfiles handles the raw article text files the upstream
// scraper deposits: enumeration for normalization and the sweep of
// delivery-notification placeholders left by failed scrape batches.
package rawfiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Delivery-notification placeholders look like
// idx_42_batch_3_deliverynotification.txt; the first number is the
// source-URL index whose scrape needs re-running.
var notificationRe = regexp.MustCompile(`^idx_([0-9]+)_batch_[0-9]+_deliverynotification\.txt$`)

// List returns every .txt file under dir (recursively), sorted by path
// for a deterministic processing order. Delivery-notification
// placeholders are excluded; run Sweep first to remove them.
func List(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".txt") || notificationRe.MatchString(name) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list raw files in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Sweep deletes delivery-notification files under dir and returns the
// source-URL indices they named, for re-scraping. Advisory housekeeping:
// a sweep failure never blocks processing of complete files.
func Sweep(dir string) ([]string, error) {
	var indices []string
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if m := notificationRe.FindStringSubmatch(d.Name()); m != nil {
			indices = append(indices, m[1])
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan for delivery notifications in %s: %w", dir, err)
	}

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return indices, fmt.Errorf("remove %s: %w", path, err)
		}
	}

	sort.Strings(indices)
	return indices, nil
}
