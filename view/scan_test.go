package view

import (
	"reflect"
	"testing"
)

func TestNormalizeScanResultShapes(t *testing.T) {
	t.Parallel()

	want := []Violation{
		{
			Id:          "image-alt",
			Description: "Ensures <img> elements have alternate text",
			Impact:      ImpactCritical,
			Nodes:       []ViolationNode{{Html: "<img>"}},
		},
	}

	testCases := []struct {
		name    string
		payload string
	}{
		{"bare array", `[{"id":"image-alt","description":"Ensures <img> elements have alternate text","impact":"critical","nodes":[{"html":"<img>"}]}]`},
		{"envelope", `{"testEngine":{"name":"axe-core"},"violations":[{"id":"image-alt","description":"Ensures <img> elements have alternate text","impact":"critical","nodes":[{"html":"<img>"}]}],"passes":[]}`},
		{"padded", "\n  [{\"id\":\"image-alt\",\"description\":\"Ensures <img> elements have alternate text\",\"impact\":\"critical\",\"nodes\":[{\"html\":\"<img>\"}]}]  "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeScanResult([]byte(tc.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestNormalizeScanResultEmpty(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`[]`, `{"violations":[]}`, `null`} {
		if payload == `null` {
			if _, err := NormalizeScanResult([]byte(payload)); err == nil {
				t.Errorf("expected error for %s", payload)
			}
			continue
		}
		got, err := NormalizeScanResult([]byte(payload))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", payload, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("%s: got %v, want empty non-nil list", payload, got)
		}
	}
}

func TestNormalizeScanResultMissingNodes(t *testing.T) {
	t.Parallel()

	got, err := NormalizeScanResult([]byte(`[{"id":"region","description":"d"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Nodes == nil {
		t.Error("nodes should be normalized to an empty list")
	}
	if got[0].Impact != "" {
		t.Errorf("impact = %q, want absent", got[0].Impact)
	}
}

func TestNormalizeScanResultErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"no violations field", `{"error":"Failed to scan the URL"}`},
		{"scalar", `42`},
		{"broken json", `[{"id":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NormalizeScanResult([]byte(tc.payload)); err == nil {
				t.Errorf("expected error for %q", tc.payload)
			}
		})
	}
}

func TestImpactOrMinor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		impact   Impact
		expected Impact
	}{
		{ImpactCritical, ImpactCritical},
		{ImpactSerious, ImpactSerious},
		{ImpactModerate, ImpactModerate},
		{ImpactMinor, ImpactMinor},
		{"", ImpactMinor},
		{"cosmetic", ImpactMinor},
	}

	for _, tc := range testCases {
		if got := tc.impact.OrMinor(); got != tc.expected {
			t.Errorf("Impact(%q).OrMinor() = %q, want %q", tc.impact, got, tc.expected)
		}
	}
}

func TestNormalizeScanResultNestedTarget(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		target string
	}{
		{"shadow dom", `[["my-widget","span.label"]]`},
		{"iframe", `["iframe#frame",".content > a"]`},
		{"plain", `["#main > img"]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			payload := `{"violations":[{"id":"color-contrast","impact":"serious","nodes":[{"html":"<span class=\"label\">x</span>","target":` + tc.target + `}]}]}`
			got, err := NormalizeScanResult([]byte(payload))
			if err != nil {
				t.Fatalf("valid engine payload rejected: %v", err)
			}
			if len(got) != 1 || len(got[0].Nodes) != 1 {
				t.Fatalf("got %+v", got)
			}
			node := got[0].Nodes[0]
			if node.Html != `<span class="label">x</span>` {
				t.Errorf("html = %q", node.Html)
			}
			if string(node.Target) != tc.target {
				t.Errorf("target = %s, want %s", node.Target, tc.target)
			}
		})
	}
}
