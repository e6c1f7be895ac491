// Package wiki is the Wiki.js GraphQL API client.
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
)

// requestTimeout bounds each HTTP call. A hung call blocks its pool
// worker until this fires; there is no explicit in-flight cancellation.
const requestTimeout = 30 * time.Second

// Client talks to one Wiki.js instance.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      logging.Logger
}

// NewClient returns a Client for the GraphQL endpoint. A missing token
// is a fatal precondition: no partial sync is attempted without auth.
func NewClient(endpoint, token string, log logging.Logger) (*Client, error) {
	if token == "" {
		return nil, errors.NewWithDetails(
			errors.ETokenMissing,
			"Wiki.js API token not configured",
			map[string]string{"endpoint": endpoint},
		)
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: requestTimeout},
		log:      log,
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do sends one GraphQL request and returns the data payload. GraphQL
// errors embedded in a 200 response are failures, distinct from
// transport-level success.
func (c *Client) do(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to encode graphql request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.EWikiRequest, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("graphql request", "endpoint", c.endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithDetails(
			errors.EWikiRequest,
			"request failed",
			err,
			map[string]string{"endpoint": c.endpoint},
		)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewWithDetails(
			errors.EWikiRequest,
			fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode),
			map[string]string{"endpoint": c.endpoint},
		)
	}

	var gql graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gql); err != nil {
		return nil, errors.Wrap(errors.EWikiRequest, "invalid JSON response", err)
	}
	if len(gql.Errors) > 0 {
		return nil, errors.NewWithDetails(
			errors.EWikiRequest,
			"graphql errors: "+gql.Errors[0].Message,
			map[string]string{"endpoint": c.endpoint},
		)
	}

	return gql.Data, nil
}
