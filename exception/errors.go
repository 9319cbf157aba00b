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

package exception

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	return msg
}

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

const RequiredParamsMissing = "15"
const UrlRequiredMsg = "URL is required"

const ScanFailed = "5000"
const ScanFailedMsg = "Failed to scan the URL"

// NewUrlRequiredError is returned when the scan request has no url parameter.
func NewUrlRequiredError() *CustomError {
	return &CustomError{
		Status:  http.StatusBadRequest,
		Code:    RequiredParamsMissing,
		Message: UrlRequiredMsg,
		Params:  map[string]interface{}{"params": "url"},
	}
}

// NewScanFailedError hides the cause behind the generic scan failure message.
// The cause is kept in Debug for server-side logging only.
func NewScanFailedError(cause error) *CustomError {
	debug := ""
	if cause != nil {
		debug = cause.Error()
	}
	return &CustomError{
		Status:  http.StatusInternalServerError,
		Code:    ScanFailed,
		Message: ScanFailedMsg,
		Debug:   debug,
	}
}

// AsCustomError unwraps err into a CustomError if the chain contains one.
func AsCustomError(err error) (*CustomError, bool) {
	var customPtr *CustomError
	if errors.As(err, &customPtr) {
		return customPtr, true
	}
	var custom CustomError
	if errors.As(err, &custom) {
		return &custom, true
	}
	return nil, false
}
