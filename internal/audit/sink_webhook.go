// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/models"
	"github.com/go-resty/resty/v2"
)

// webhookSink POSTs every audit event as JSON to an external collector (for
// example a SIEM ingestion endpoint). Delivery is best effort; retries are
// handled by the resty client, anything beyond that is dropped by the
// dispatcher's fail-open contract.
type webhookSink struct {
	client *resty.Client
	url    string
}

// NewWebhookSink constructs a sink that delivers events to the given URL.
func NewWebhookSink(url string) Sink {
	client := resty.New().
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetTimeout(3 * time.Second)

	return &webhookSink{client: client, url: url}
}

func (s *webhookSink) Name() string { return "webhook" }

func (s *webhookSink) Deliver(ctx context.Context, event models.AuditEvent) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode())
	}

	return nil
}
