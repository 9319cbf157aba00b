package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/view"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

// ScanApiClient calls the scan service on behalf of the report UI.
type ScanApiClient interface {
	Scan(ctx context.Context, pageUrl string) ([]byte, error)
}

func NewScanApiClient(serviceUrl string, timeout time.Duration) ScanApiClient {
	// zero timeout waits for the scan as long as it takes
	cl := http.Client{Timeout: timeout}
	return &scanApiClientImpl{
		serviceUrl: strings.TrimSuffix(serviceUrl, "/"),
		client:     resty.NewWithClient(&cl),
	}
}

type scanApiClientImpl struct {
	serviceUrl string
	client     *resty.Client
}

func (s scanApiClientImpl) Scan(ctx context.Context, pageUrl string) ([]byte, error) {
	req := s.client.R()
	req.SetContext(ctx)
	req.SetQueryParam("url", pageUrl)

	log.Debugf("Requesting scan of %s from %s", pageUrl, s.serviceUrl)
	resp, err := req.Get(fmt.Sprintf("%s/scan", s.serviceUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to reach scan service: %s", err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		var errResp view.ErrorResponse
		if jsonErr := json.Unmarshal(resp.Body(), &errResp); jsonErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("request failed with status code %d: %s", resp.StatusCode(), errResp.Error)
		}
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
