package wiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
)

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("https://wiki.example/graphql", "", logging.Nop())
	assert.Equal(t, errors.ETokenMissing, errors.GetCode(err))
}

// newTestClient spins up a GraphQL stub and returns a client against it.
// handler receives the decoded request and writes the response.
func newTestClient(t *testing.T, handler func(t *testing.T, req graphqlRequest, w http.ResponseWriter)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(t, req, w)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-token", logging.Nop())
	require.NoError(t, err)
	return client
}

func TestListPages(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		assert.Contains(t, req.Query, "pages")
		assert.Contains(t, req.Query, "list")
		_, _ = w.Write([]byte(`{"data":{"pages":{"list":[
			{"id":7,"path":"wiki/Existing_Search"},
			{"id":9,"path":"wiki/Other"}
		]}}}`))
	})

	index, err := client.ListPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"wiki/Existing_Search": 7,
		"wiki/Other":           9,
	}, index)
}

func TestCreatePage(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		assert.Equal(t, "Test Search", req.Variables["title"])
		assert.Equal(t, "wiki/Test_Search", req.Variables["path"])
		assert.Equal(t, "markdown", req.Variables["editor"])
		assert.Equal(t, true, req.Variables["isPublished"])
		assert.Equal(t, false, req.Variables["isPrivate"])
		assert.Equal(t, "en", req.Variables["locale"])
		_, _ = w.Write([]byte(`{"data":{"pages":{"create":{"responseResult":{"succeeded":true},"page":{"id":12}}}}}`))
	})

	err := client.CreatePage(context.Background(), "Test Search", "# body", "wiki/Test_Search", "en")
	assert.NoError(t, err)
}

func TestCreatePageRejected(t *testing.T) {
	// HTTP 200 with succeeded=false is a failure distinct from a
	// transport error.
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"data":{"pages":{"create":{"responseResult":{"succeeded":false,"message":"page already exists"}}}}}`))
	})

	err := client.CreatePage(context.Background(), "T", "b", "wiki/T", "en")
	assert.Equal(t, errors.EWikiRejected, errors.GetCode(err))
	assert.Contains(t, err.Error(), "page already exists")
}

func TestUpdatePage(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		// JSON numbers decode as float64.
		assert.Equal(t, float64(7), req.Variables["id"])
		_, _ = w.Write([]byte(`{"data":{"pages":{"update":{"responseResult":{"succeeded":true}}}}}`))
	})

	err := client.UpdatePage(context.Background(), 7, "T", "b", "wiki/T", "en")
	assert.NoError(t, err)
}

func TestUpdatePageRejected(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"data":{"pages":{"update":{"responseResult":{"succeeded":false,"message":"locked"}}}}}`))
	})

	err := client.UpdatePage(context.Background(), 7, "T", "b", "wiki/T", "en")
	assert.Equal(t, errors.EWikiRejected, errors.GetCode(err))
}

func TestGraphQLErrorsAreFailures(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"not authorized"}]}`))
	})

	_, err := client.ListPages(context.Background())
	assert.Equal(t, errors.EWikiRequest, errors.GetCode(err))
	assert.Contains(t, err.Error(), "not authorized")
}

func TestHTTPErrorStatus(t *testing.T) {
	client := newTestClient(t, func(t *testing.T, req graphqlRequest, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListPages(context.Background())
	assert.Equal(t, errors.EWikiRequest, errors.GetCode(err))
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1/graphql", "test-token", logging.Nop())
	require.NoError(t, err)

	_, err = client.ListPages(context.Background())
	assert.Equal(t, errors.EWikiRequest, errors.GetCode(err))
}
