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

package controller

import (
	"net/http"

	"github.com/Netcracker/qubership-accessibility-scanner/exception"
	"github.com/Netcracker/qubership-accessibility-scanner/service"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	log "github.com/sirupsen/logrus"
)

type ScanController interface {
	Scan(w http.ResponseWriter, r *http.Request)
}

func NewScanController(scanService service.ScanService) ScanController {
	return &scanControllerImpl{scanService: scanService}
}

type scanControllerImpl struct {
	scanService service.ScanService
}

func (s *scanControllerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	request := view.ScanRequest{Url: r.URL.Query().Get("url")}
	if request.Url == "" {
		RespondWithCustomError(w, exception.NewUrlRequiredError())
		return
	}

	result, err := s.scanService.Scan(r.Context(), request.Url)
	if err != nil {
		respondWithError(w, exception.ScanFailedMsg, err)
		return
	}

	log.Debugf("Scan of %s returned %d bytes", request.Url, len(result))
	writeJson(w, http.StatusOK, result)
}
