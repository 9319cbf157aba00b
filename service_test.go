package main

import (
	"testing"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/service"
)

func TestWriteTimeout(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		scanTimeout time.Duration
		want        time.Duration
	}{
		{"unlimited scan", 0, 0},
		{"bounded scan", time.Minute, 90 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := writeTimeout(tc.scanTimeout); got != tc.want {
				t.Errorf("writeTimeout(%v) = %v, want %v", tc.scanTimeout, got, tc.want)
			}
		})
	}
}

func TestMakeServerDefaultsDoNotLimitScan(t *testing.T) {
	t.Setenv(service.SCAN_TIMEOUT, "")
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv := makeServer(systemInfoService, nil)
	if srv.WriteTimeout != 0 {
		t.Errorf("write timeout = %v, want none", srv.WriteTimeout)
	}
}
