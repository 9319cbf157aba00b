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
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	LISTEN_ADDRESS       = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED       = "ORIGIN_ALLOWED"
	LOG_LEVEL            = "LOG_LEVEL"
	CHROME_PATH          = "CHROME_PATH"
	AXE_SCRIPT_PATH      = "AXE_SCRIPT_PATH"
	AXE_SCRIPT_URL       = "AXE_SCRIPT_URL"
	AXE_SCRIPT_TTL       = "AXE_SCRIPT_TTL"
	NAVIGATION_TIMEOUT   = "NAVIGATION_TIMEOUT"
	SCAN_TIMEOUT         = "SCAN_TIMEOUT"
	MAX_CONCURRENT_SCANS = "MAX_CONCURRENT_SCANS"
	SCAN_ALLOWED_SCHEMES = "SCAN_ALLOWED_SCHEMES"
)

const DefaultAxeScriptUrl = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetChromePath() string
	GetAxeScriptPath() string
	GetAxeScriptUrl() string
	GetAxeScriptTTL() time.Duration
	GetNavigationTimeout() time.Duration
	GetScanTimeout() time.Duration
	GetMaxConcurrentScans() int
	GetAllowedSchemes() []string
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setListenAddress()
	g.setOriginAllowed()
	g.setLogLevel()
	g.setChromePath()
	g.setAxeScriptSource()
	g.setAllowedSchemes()

	if err := g.setDuration(AXE_SCRIPT_TTL, time.Hour); err != nil {
		return err
	}
	if err := g.setDuration(NAVIGATION_TIMEOUT, 30*time.Second); err != nil {
		return err
	}
	if err := g.setDuration(SCAN_TIMEOUT, 0); err != nil {
		return err
	}
	return g.setMaxConcurrentScans()
}

func (g systemInfoServiceImpl) setListenAddress() {
	listenAddr := os.Getenv(LISTEN_ADDRESS)
	if listenAddr == "" {
		listenAddr = ":5000"
	}
	g.systemInfoMap[LISTEN_ADDRESS] = listenAddr
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	origin := os.Getenv(ORIGIN_ALLOWED)
	if origin == "" {
		origin = "*"
	}
	g.systemInfoMap[ORIGIN_ALLOWED] = origin
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) setChromePath() {
	g.systemInfoMap[CHROME_PATH] = os.Getenv(CHROME_PATH)
}

func (g systemInfoServiceImpl) GetChromePath() string {
	return g.systemInfoMap[CHROME_PATH].(string)
}

func (g systemInfoServiceImpl) setAxeScriptSource() {
	g.systemInfoMap[AXE_SCRIPT_PATH] = os.Getenv(AXE_SCRIPT_PATH)
	scriptUrl := os.Getenv(AXE_SCRIPT_URL)
	if scriptUrl == "" {
		scriptUrl = DefaultAxeScriptUrl
	}
	g.systemInfoMap[AXE_SCRIPT_URL] = scriptUrl
}

func (g systemInfoServiceImpl) GetAxeScriptPath() string {
	return g.systemInfoMap[AXE_SCRIPT_PATH].(string)
}

func (g systemInfoServiceImpl) GetAxeScriptUrl() string {
	return g.systemInfoMap[AXE_SCRIPT_URL].(string)
}

func (g systemInfoServiceImpl) GetAxeScriptTTL() time.Duration {
	return g.systemInfoMap[AXE_SCRIPT_TTL].(time.Duration)
}

func (g systemInfoServiceImpl) GetNavigationTimeout() time.Duration {
	return g.systemInfoMap[NAVIGATION_TIMEOUT].(time.Duration)
}

func (g systemInfoServiceImpl) GetScanTimeout() time.Duration {
	return g.systemInfoMap[SCAN_TIMEOUT].(time.Duration)
}

func (g systemInfoServiceImpl) setDuration(key string, def time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		g.systemInfoMap[key] = def
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	g.systemInfoMap[key] = d
	return nil
}

func (g systemInfoServiceImpl) setMaxConcurrentScans() error {
	value := os.Getenv(MAX_CONCURRENT_SCANS)
	if value == "" {
		g.systemInfoMap[MAX_CONCURRENT_SCANS] = 0
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	g.systemInfoMap[MAX_CONCURRENT_SCANS] = n
	return nil
}

// GetMaxConcurrentScans returns 0 when scans are not limited.
func (g systemInfoServiceImpl) GetMaxConcurrentScans() int {
	return g.systemInfoMap[MAX_CONCURRENT_SCANS].(int)
}

func (g systemInfoServiceImpl) setAllowedSchemes() {
	value := os.Getenv(SCAN_ALLOWED_SCHEMES)
	if value == "" {
		value = "http,https"
	}
	schemes := make([]string, 0)
	for _, s := range strings.Split(value, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			schemes = append(schemes, s)
		}
	}
	g.systemInfoMap[SCAN_ALLOWED_SCHEMES] = schemes
}

func (g systemInfoServiceImpl) GetAllowedSchemes() []string {
	return g.systemInfoMap[SCAN_ALLOWED_SCHEMES].([]string)
}
