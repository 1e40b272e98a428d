// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/clock"
)

const (
	statsDelay = 60 * time.Second
)

// advances the height at a fixed interval, standing in for the host chain
type blockProducer struct {
	log       *logger.L
	driver    *clock.Driver
	interval  time.Duration
	intervals <-chan time.Duration
}

func (p *blockProducer) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	log.Infof("starting at height: %d  interval: %s", p.driver.Height(), p.interval)

	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case interval := <-p.intervals:
			log.Infof("interval: %s", interval)
			ticker.Stop()
			ticker = time.NewTicker(interval)
		case <-ticker.C:
			height := p.driver.Height() + 1
			report, err := p.driver.OnBlock(height)
			if nil != err {
				log.Errorf("block: %d  error: %s", height, err)
				continue
			}
			log.Debugf("block: %d  report: %+v", height, report)
		}
	}

	log.Info("shutting down…")
}

// periodically log the driver totals
type statistics struct {
	log    *logger.L
	driver *clock.Driver
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(statsDelay):
			text, err := json.Marshal(s.driver.Statistics())
			if nil != err {
				s.log.Errorf("marshal error: %s", err)
			} else {
				s.log.Infof("stats: %s", text)
			}
		}
	}
}
