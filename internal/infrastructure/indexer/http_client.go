package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type client struct {
	*http.Client
}

func newHTTPClient(requestTimeout time.Duration) *client {
	return &client{&http.Client{Timeout: requestTimeout}}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// query posts a GraphQL request and decodes the data field of the response
// into result.
func (c *client) query(
	ctx context.Context, url string, req graphqlRequest, result interface{},
) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	status, resp, err := c.doRequest(httpReq)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("indexer responded with status %d: %s", status, resp)
	}

	var res graphqlResponse
	if err := json.Unmarshal(resp, &res); err != nil {
		return fmt.Errorf("failed to decode indexer response: %s", err)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrQueryFailed, res.Errors[0].Message)
	}
	return json.Unmarshal(res.Data, result)
}

func (c *client) doRequest(req *http.Request) (int, []byte, error) {
	rs, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return -1, nil, err
	}
	return rs.StatusCode, bodyBytes, nil
}
