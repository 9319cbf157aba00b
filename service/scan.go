// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/client"
	"github.com/Netcracker/qubership-accessibility-scanner/exception"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

type ScanService interface {
	Scan(ctx context.Context, pageUrl string) (json.RawMessage, error)
}

type ScanOptions struct {
	AllowedSchemes     []string
	ScanTimeout        time.Duration
	MaxConcurrentScans int
}

func NewScanService(browserClient client.BrowserClient, scriptProvider client.EngineScriptProvider, opts ScanOptions) ScanService {
	s := &scanServiceImpl{
		browserClient:  browserClient,
		scriptProvider: scriptProvider,
		allowedSchemes: make(map[string]bool),
		scanTimeout:    opts.ScanTimeout,
	}
	for _, scheme := range opts.AllowedSchemes {
		s.allowedSchemes[strings.ToLower(scheme)] = true
	}
	if opts.MaxConcurrentScans > 0 {
		s.limiter = semaphore.NewWeighted(int64(opts.MaxConcurrentScans))
	}
	return s
}

type scanServiceImpl struct {
	browserClient  client.BrowserClient
	scriptProvider client.EngineScriptProvider
	allowedSchemes map[string]bool
	scanTimeout    time.Duration
	limiter        *semaphore.Weighted
}

func (s *scanServiceImpl) Scan(ctx context.Context, pageUrl string) (json.RawMessage, error) {
	if pageUrl == "" {
		return nil, exception.NewUrlRequiredError()
	}

	scanId := uuid.New().String()
	logger := log.WithFields(log.Fields{"scanId": scanId, "url": pageUrl})

	if err := s.checkScheme(pageUrl); err != nil {
		logger.Errorf("Error during scan: %v", err)
		return nil, exception.NewScanFailedError(err)
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx, 1); err != nil {
			logger.Errorf("Error during scan: failed to acquire scan slot: %v", err)
			return nil, exception.NewScanFailedError(err)
		}
		defer s.limiter.Release(1)
	}

	if s.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scanTimeout)
		defer cancel()
	}

	script, err := s.scriptProvider.GetScript(ctx)
	if err != nil {
		logger.Errorf("Error during scan: %v", err)
		return nil, exception.NewScanFailedError(err)
	}

	start := time.Now()
	logger.Info("Scan started")
	result, err := s.browserClient.RunEngine(ctx, pageUrl, script)
	if err != nil {
		logger.Errorf("Error during scan: %v", err)
		return nil, exception.NewScanFailedError(err)
	}
	logger.Infof("Scan finished in %v", time.Since(start))
	return result, nil
}

func (s *scanServiceImpl) checkScheme(pageUrl string) error {
	parsed, err := url.Parse(pageUrl)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if len(s.allowedSchemes) == 0 {
		return nil
	}
	if !s.allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return fmt.Errorf("url scheme '%s' is not allowed", parsed.Scheme)
	}
	return nil
}
