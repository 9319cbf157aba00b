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

package view

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Impact string

const ImpactCritical Impact = "critical"
const ImpactSerious Impact = "serious"
const ImpactModerate Impact = "moderate"
const ImpactMinor Impact = "minor"

// Impacts lists the known impact categories from most to least severe.
var Impacts = []Impact{ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor}

// OrMinor returns the impact itself, or minor when it is absent or unknown.
func (i Impact) OrMinor() Impact {
	switch i {
	case ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor:
		return i
	}
	return ImpactMinor
}

// ViolationNode keeps target as raw JSON: shadow DOM and iframe nodes are
// addressed with nested selector arrays.
type ViolationNode struct {
	Html           string          `json:"html"`
	Target         json.RawMessage `json:"target,omitempty"`
	FailureSummary string          `json:"failureSummary,omitempty"`
}

type Violation struct {
	Id          string          `json:"id"`
	Description string          `json:"description"`
	Impact      Impact          `json:"impact,omitempty" jsonschema:"enum=critical,enum=serious,enum=moderate,enum=minor"`
	Help        string          `json:"help,omitempty"`
	HelpUrl     string          `json:"helpUrl,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Nodes       []ViolationNode `json:"nodes"`
}

type ScanResult struct {
	Violations []Violation `json:"violations"`
}

// ScanRequest is the untrusted input of GET /scan.
type ScanRequest struct {
	Url string `json:"url"`
}

type ImpactBucket struct {
	Name  Impact `json:"name"`
	Value int    `json:"value"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NormalizeScanResult accepts the engine payload either as a bare violation
// array or wrapped in a {"violations": [...]} envelope.
func NormalizeScanResult(data []byte) ([]Violation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty scan result")
	}
	var violations []Violation
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &violations); err != nil {
			return nil, fmt.Errorf("failed to decode violation list: %w", err)
		}
	case '{':
		var envelope struct {
			Violations *[]Violation `json:"violations"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode scan result: %w", err)
		}
		if envelope.Violations == nil {
			return nil, fmt.Errorf("scan result has no violations field")
		}
		violations = *envelope.Violations
	default:
		return nil, fmt.Errorf("unexpected scan result format")
	}
	if violations == nil {
		violations = make([]Violation, 0)
	}
	for i := range violations {
		if violations[i].Nodes == nil {
			violations[i].Nodes = make([]ViolationNode, 0)
		}
	}
	return violations, nil
}
