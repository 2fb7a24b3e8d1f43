// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/penpad"
)

// watchSettle is how long Watch waits for a burst of file events to end
// before reloading. Editors often write a file in several steps.
const watchSettle = 100 * time.Millisecond

// Watch reloads the catalog from path whenever the file changes, until ctx
// is done. The directory is watched rather than the file so that editors
// replacing the file by rename are followed.
//
// onReload, if not nil, is called after each reload attempt with its error.
// A document that fails to parse or validate leaves the catalog unchanged.
func (c *Catalog) Watch(ctx context.Context, path string, onReload func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(abs), err)
	}
	penpad.Logger().Info("catalog: watching", "path", abs)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(watchSettle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			penpad.Logger().Warn("catalog: watcher error", "err", err)
		case <-timer.C:
			err := c.reload(abs)
			if err != nil {
				penpad.Logger().Warn("catalog: reload failed", "path", abs, "err", err)
			} else {
				penpad.Logger().Info("catalog: reloaded", "path", abs)
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}

func (c *Catalog) reload(path string) error {
	doc, err := ReadFile(path)
	if err != nil {
		return err
	}
	return c.Replace(doc)
}
