// Package blockapi implements blockfeed.Source over the HTTP block list
// endpoint. Responses are checked at the boundary: the status must be 2xx,
// the body must be a JSON array, and every element must carry all the fields
// of a block before anything is handed to the feed.
package blockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabapcia/blockview/internal/blockfeed"
	"github.com/gabapcia/blockview/internal/pkg/validator"
)

// maxPayloadSize bounds how much of a response body is read.
const maxPayloadSize = 32 << 20

var (
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedPayload is returned when the body is not a JSON array of
	// well-formed blocks.
	ErrMalformedPayload = errors.New("malformed block list payload")
)

type client struct {
	endpoint   string       // URL of the block list
	httpClient *http.Client // client used to perform requests
}

var _ blockfeed.Source = (*client)(nil)

// FetchBlocks issues a GET to the endpoint and returns the decoded blocks in
// server order.
func (c *client) FetchBlocks(ctx context.Context) ([]blockfeed.Block, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxPayloadSize))
	if err != nil {
		return nil, err
	}

	return decodeBlocks(body)
}

// decodeBlocks parses and validates a block list body.
func decodeBlocks(body []byte) ([]blockfeed.Block, error) {
	// json.Unmarshal accepts null for a slice, so the array is checked first.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: body is not a JSON array", ErrMalformedPayload)
	}

	var payload blockListResponse
	if err := json.Unmarshal(body, &payload.Blocks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if err := validator.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	blocks := make([]blockfeed.Block, len(payload.Blocks))
	for i, b := range payload.Blocks {
		blocks[i] = b.toFeedBlock()
	}

	return blocks, nil
}

// NewClient returns a Source that reads the block list from endpoint using
// httpClient.
func NewClient(httpClient *http.Client, endpoint string) *client {
	return &client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}
