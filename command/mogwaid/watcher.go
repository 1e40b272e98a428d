// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

const (
	reloadInterval = time.Second
)

// re-reads the configuration file when it changes and passes a new
// block interval to the producer
//
// other settings only take effect on restart
type configWatcher struct {
	log       *logger.L
	fileName  string
	watcher   *fsnotify.Watcher
	limiter   *rate.Limiter
	interval  time.Duration
	intervals chan time.Duration
}

// the file is watched from creation so no change is missed before Run
func newConfigWatcher(log *logger.L, fileName string, interval time.Duration) (*configWatcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	if err := watcher.Add(fileName); nil != err {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:       log,
		fileName:  fileName,
		watcher:   watcher,
		limiter:   rate.NewLimiter(rate.Every(reloadInterval), 1),
		interval:  interval,
		intervals: make(chan time.Duration, 1),
	}, nil
}

// Intervals - receives each changed block interval
func (w *configWatcher) Intervals() <-chan time.Duration {
	return w.intervals
}

func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	defer w.watcher.Close()

	log.Infof("watching: %q", w.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case err := <-w.watcher.Errors:
			log.Errorf("watch error: %s", err)

		case event := <-w.watcher.Events:
			log.Debugf("file event: %v", event)

			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Errorf("file: %q removed, no longer watching", w.fileName)
				<-shutdown
				break loop
			}
			if event.Op&(fsnotify.Write|fsnotify.Chmod) == 0 {
				continue loop
			}

			// editors write in bursts; wait out the limiter before reading
			r := w.limiter.Reserve()
			select {
			case <-shutdown:
				r.Cancel()
				break loop
			case <-time.After(r.Delay()):
			}
			w.reload()
		}
	}

	log.Info("shutting down…")
}

func (w *configWatcher) reload() {
	options, err := getConfiguration(w.fileName)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.fileName, err)
		return
	}

	interval := time.Duration(options.BlockInterval) * time.Second
	if interval == w.interval {
		return
	}
	w.log.Infof("block interval: %s -> %s", w.interval, interval)
	w.interval = interval

	// only the latest value matters
	select {
	case <-w.intervals:
	default:
	}
	w.intervals <- interval
}
