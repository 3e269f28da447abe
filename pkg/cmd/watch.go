// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch a set of files until the context is cancelled, calling onChange with
// the name of any file written to.  Directories are watched rather than files,
// since many editors save by replacing a file.
func watchFiles(ctx context.Context, filenames []string, onChange func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	//
	defer watcher.Close()
	//
	var (
		watched = make(map[string]string)
		dirs    = make(map[string]bool)
	)
	//
	for _, filename := range filenames {
		path, err := filepath.Abs(filename)
		if err != nil {
			return err
		}
		//
		watched[path] = filename
		//
		if dir := filepath.Dir(path); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			//
			dirs[dir] = true
		}
	}
	//
	log.Infof("watching %d file(s)", len(filenames))
	//
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			//
			filename, found := watched[filepath.Clean(ev.Name)]
			//
			if found && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Debugf("%s changed (%s)", filename, ev.Op)
				onChange(filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			//
			log.Warn(err)
		}
	}
}
