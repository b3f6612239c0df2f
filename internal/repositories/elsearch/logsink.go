package elsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"communityportal/pkg/logger"
)

// LogSink ships logger batches to daily indices with the bulk API.
type LogSink struct {
	client *Client
	index  string
}

// LogSink returns a sink writing to the client's log index prefix.
func (c *Client) LogSink() *LogSink {
	return &LogSink{client: c, index: c.config.LogIndex}
}

type bulkAction struct {
	Index struct {
		Index string `json:"_index"`
		ID    string `json:"_id,omitempty"`
	} `json:"index"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// Write indexes one batch. Entry ids double as document ids so a retried
// batch does not duplicate documents.
func (s *LogSink) Write(ctx context.Context, batch []logger.LogEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, entry := range batch {
		var action bulkAction
		action.Index.Index = s.index + "-" + entry.Timestamp.UTC().Format("2006.01.02")
		action.Index.ID = entry.ID
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode log entry: %w", err)
		}
	}

	es := s.client.ES
	res, err := es.Bulk(&body, es.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read bulk response: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s - %s", res.Status(), string(raw))
	}

	var parsed bulkResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if !parsed.Errors {
		return nil
	}

	failed := 0
	var first string
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Error != nil {
				failed++
				if first == "" {
					first = result.Error.Type + ": " + result.Error.Reason
				}
			}
		}
	}
	return fmt.Errorf("%d of %d log entries rejected: %s", failed, len(batch), first)
}
