package adsclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, platformURL string) *AdsClient {
	t.Helper()

	cfg := &config.Config{
		Platform: config.Platform{
			URL:            platformURL,
			AccessToken:    "token-teste",
			TokenExpiresAt: time.Now().Add(48 * time.Hour),
			BatchSize:      50,
			MaxRetries:     1,
		},
	}

	return &AdsClient{
		Cfg:          cfg,
		TokenManager: NewTokenManager(cfg),
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		backoffBase:  time.Millisecond,
	}
}

type testItem struct {
	ID string `json:"id"`
}

func TestFetchAllPages(t *testing.T) {
	t.Run("acumula todos os itens de todas as páginas em uma chamada por página", func(t *testing.T) {
		const totalItems = 100
		const pageSize = 40

		var server *httptest.Server
		calls := 0

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++

			// Toda requisição sai com o token corrente injetado
			assert.Equal(t, "token-teste", r.URL.Query().Get("access_token"))

			start := 0
			if cursor := r.URL.Query().Get("after"); cursor != "" {
				_, _ = fmt.Sscanf(cursor, "c%d", &start)
			}

			end := start + pageSize
			if end > totalItems {
				end = totalItems
			}

			page := Page[testItem]{}
			for i := start; i < end; i++ {
				page.Data = append(page.Data, testItem{ID: fmt.Sprintf("item-%03d", i)})
			}
			if end < totalItems {
				page.Paging.Next = fmt.Sprintf("%s/entities?after=c%d", server.URL, end)
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(page)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		var lastProgress int
		items, err := FetchAllPages[testItem](client, server.URL+"/entities", func(count int, _ string) {
			lastProgress = count
		})
		require.NoError(t, err)

		assert.Len(t, items, totalItems)
		assert.Equal(t, 3, calls) // 40 + 40 + 20
		assert.Equal(t, totalItems, lastProgress)
		assert.Equal(t, "item-000", items[0].ID)
		assert.Equal(t, "item-099", items[totalItems-1].ID)
	})

	t.Run("esgotamento das tentativas em uma página aborta a paginação", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"internal","code":1}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		items, err := FetchAllPages[testItem](client, server.URL+"/entities", nil)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "página 1")
	})
}

func TestBatchExecute(t *testing.T) {
	t.Run("chunking respeita o limite de sub-requisições por chamada", func(t *testing.T) {
		networkCalls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			networkCalls++

			require.NoError(t, r.ParseForm())
			var subRequests []adsdomain.BatchSubRequest
			require.NoError(t, json.Unmarshal([]byte(r.Form.Get("batch")), &subRequests))
			assert.LessOrEqual(t, len(subRequests), 50)

			responses := make([]adsdomain.BatchSubResponse, len(subRequests))
			for i, sub := range subRequests {
				if strings.HasPrefix(sub.RelativeURL, "throttled") {
					responses[i] = adsdomain.BatchSubResponse{
						Code: http.StatusBadRequest,
						Body: `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`,
					}
					continue
				}

				responses[i] = adsdomain.BatchSubResponse{
					Code: http.StatusOK,
					Body: `{"data":[{"impressions":"10","clicks":"1","spend":"1.00"}]}`,
				}
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(responses)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		requests := make([]adsdomain.BatchSubRequest, 100)
		for i := range requests {
			prefix := "ok"
			if i < 10 {
				prefix = "throttled"
			}
			requests[i] = adsdomain.BatchSubRequest{
				Method:      http.MethodGet,
				RelativeURL: fmt.Sprintf("%s-%03d/insights", prefix, i),
			}
		}

		results := client.BatchExecute("token-teste", requests)

		require.Len(t, results, 100)
		assert.Equal(t, 2, networkCalls) // 100 sub-requisições em chunks de 50

		nonNil := 0
		for _, result := range results {
			if result != nil {
				nonNil++
				assert.Equal(t, http.StatusOK, result.Code)
			}
		}
		assert.Equal(t, 90, nonNil)

		// As limitadas por cota viram placeholders nil nas posições originais
		for i := 0; i < 10; i++ {
			assert.Nil(t, results[i])
		}
	})

	t.Run("retentativa após token expirado sai com o token renovado", func(t *testing.T) {
		batchCalls := 0
		refreshCalls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "oauth/access_token") {
				refreshCalls++
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"access_token":"token-novo","token_type":"bearer","expires_in":5184000}`))
				return
			}

			batchCalls++
			require.NoError(t, r.ParseForm())

			if batchCalls == 1 {
				assert.Equal(t, "token-teste", r.Form.Get("access_token"))
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`))
				return
			}

			// A segunda tentativa precisa carregar o token recém-emitido
			assert.Equal(t, "token-novo", r.Form.Get("access_token"))

			var subRequests []adsdomain.BatchSubRequest
			require.NoError(t, json.Unmarshal([]byte(r.Form.Get("batch")), &subRequests))

			responses := make([]adsdomain.BatchSubResponse, len(subRequests))
			for i := range subRequests {
				responses[i] = adsdomain.BatchSubResponse{
					Code: http.StatusOK,
					Body: `{"data":[]}`,
				}
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(responses)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		client.Cfg.Platform.BaseURL = server.URL
		client.Cfg.Platform.Version = "v22.0"

		requests := []adsdomain.BatchSubRequest{
			{Method: http.MethodGet, RelativeURL: "ok-001/insights"},
		}

		results := client.BatchExecute("token-teste", requests)

		require.Len(t, results, 1)
		require.NotNil(t, results[0])
		assert.Equal(t, http.StatusOK, results[0].Code)
		assert.Equal(t, 2, batchCalls)
		assert.Equal(t, 1, refreshCalls)
	})

	t.Run("lista vazia não faz chamada de rede", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("nenhuma chamada de rede esperada")
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		results := client.BatchExecute("token-teste", nil)
		assert.Empty(t, results)
	})
}
