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
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Netcracker/qubership-accessibility-scanner/exception"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func respondWithJson(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJson(w, code, response)
}

func writeJson(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.Debugf("Failed to write response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, msg string, err error) {
	if customError, ok := exception.AsCustomError(err); ok {
		RespondWithCustomError(w, customError)
		return
	}
	log.Errorf("%s: %v", msg, err)
	respondWithJson(w, http.StatusInternalServerError, view.ErrorResponse{Error: msg})
}

// RespondWithCustomError writes the public part of the error only; Debug stays in the log.
func RespondWithCustomError(w http.ResponseWriter, err *exception.CustomError) {
	if err.Debug != "" {
		log.Debugf("Request failed with code %s: %s | %s", err.Code, err.Error(), err.Debug)
	}
	respondWithJson(w, err.Status, view.ErrorResponse{Error: err.Error()})
}

func getStringParam(r *http.Request, p string) string {
	params := mux.Vars(r)
	return params[p]
}

func getUnescapedStringParam(r *http.Request, p string) (string, error) {
	return url.PathUnescape(getStringParam(r, p))
}
