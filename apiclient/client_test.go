package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/alefdelta/sacco-client/apiclient"
	"github.com/alefdelta/sacco-client/requests"
)

func newClient(t *testing.T, handler http.Handler, options ...apiclient.Option) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, options...)
	require.NoError(t, err)
	return client
}

func staticSource() apiclient.Option {
	return apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "AT1"}))
}

func TestClassify_UnauthorizedIsSilent(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), staticSource())

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.Silent)
	require.Equal(t, "Unauthorized", apiErr.Message)
	require.Equal(t, 401, apiErr.StatusCode)
	require.True(t, apiclient.IsSilent(err))
	require.True(t, apiclient.IsUnauthorized(err))
}

func TestClassify_ServerMessageNotSilent(t *testing.T) {
	for _, status := range []int{403, 500} {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "backend unhappy"})
		}), staticSource())

		_, err := client.Me(context.Background())
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.False(t, apiErr.Silent)
		require.Equal(t, "backend unhappy", apiErr.Message)
		require.Equal(t, status, apiErr.StatusCode)
	}
}

func TestClassify_FallbackMessage(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}), staticSource())

	_, err := client.Me(context.Background())
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Request failed", apiErr.Message)
}

func TestLogin_UnauthorizedIsCredentialFailure(t *testing.T) {
	// a 401 on an unauthenticated call keeps the server's message and is not
	// silent: the login form must show it
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))

	_, err := client.Login(context.Background(), "+251911234567", "wrong")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.False(t, apiErr.Silent)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestGet_RetriesTransportFailureOnce(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// drop the connection mid-flight to simulate a transport failure
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "1", "member_id": "MEM-1"})
	}), staticSource())

	member, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "MEM-1", member.MemberID)
	require.Equal(t, int32(2), calls.Load())
}

func TestGet_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), staticSource())

	_, err := client.Me(context.Background())
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestGet_NoRetryOnUnauthorized(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}), staticSource())

	_, err := client.Me(context.Background())
	require.True(t, apiclient.IsSilent(err))
	require.Equal(t, int32(1), calls.Load(), "retrying an authentication failure can never succeed")
}

func TestProfileWithToken_ExplicitBearer(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer REHYDRATE-TOKEN", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "1", "member_id": "MEM-1"})
	}))

	member, err := client.ProfileWithToken(context.Background(), "REHYDRATE-TOKEN")
	require.NoError(t, err)
	require.Equal(t, "MEM-1", member.MemberID)
}

func TestLogin_DecodesGrant(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "+251911234567", body["phone"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  "AT1",
			"refreshToken": "RT1",
			"member":       map[string]any{"id": "1", "member_id": "MEM-1"},
		})
	}))

	grant, err := client.Login(context.Background(), "+251911234567", "password123")
	require.NoError(t, err)
	require.Equal(t, "AT1", grant.AccessToken)
	require.Equal(t, "RT1", grant.RefreshToken)
	require.Equal(t, "MEM-1", grant.Member.MemberID)
}

func TestAccounts_DecodesAmounts(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{
			"id": "1",
			"account_number": "SAV-2024-001-01",
			"account_type": "COMPULSORY",
			"balance": 45000.00,
			"lien_amount": 4500.00,
			"available_balance": 40500.00,
			"status": "ACTIVE",
			"interest_rate": 5.0,
			"created_at": "2024-01-15T10:00:00Z"
		}]`))
	}), staticSource())

	accs, err := client.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accs, 1)
	require.True(t, accs[0].Balance.Equal(decimal.RequireFromString("45000")))
	require.True(t, accs[0].AvailableBalance.Equal(decimal.RequireFromString("40500")))
}

func TestCreateRequest_AttachesIdempotencyKey(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Type           string `json:"type"`
			IdempotencyKey string `json:"idempotency_key"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "DEPOSIT", body.Type)
		_, err := uuid.Parse(body.IdempotencyKey)
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "9", "request_id": "REQ-9", "type": "DEPOSIT", "status": "PENDING",
			"created_at": "2024-12-02T10:00:00Z",
		})
	}), staticSource())

	amount := decimal.RequireFromString("5000")
	created, err := client.CreateRequest(context.Background(), requests.NewRequest{
		Type:        requests.TypeDeposit,
		Amount:      &amount,
		Description: "Monthly contribution",
	})
	require.NoError(t, err)
	require.Equal(t, requests.StatusPending, created.Status)
}

func TestUpload_Multipart(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "receipt.png", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/uploads/receipt.png"})
	}), staticSource())

	url, err := client.Upload(context.Background(), "receipt.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/uploads/receipt.png", url)
}

func TestMarkNotificationRead(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/client/notifications/n-1/read", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}), staticSource())

	require.NoError(t, client.MarkNotificationRead(context.Background(), "n-1"))
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := apiclient.New("")
	require.Error(t, err)
}
