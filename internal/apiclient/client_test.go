package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, APIPath: "/api"})
}

func TestEndpoints(t *testing.T) {
	e := NewEndpoints(Config{BaseURL: "http://host:8000/", APIPath: "api/"})
	assert.Equal(t, "http://host:8000/", e.Root())
	assert.Equal(t, "http://host:8000/api/accounts/", e.Accounts())
	assert.Equal(t, "http://host:8000/api/accounts/12/", e.Account(12))
	assert.Equal(t, "http://host:8000/api/whatsapp-link/", e.ContactLink())
	assert.Equal(t, "http://host:8000/api/verify-admin/a%2Fb/", e.VerifyAdmin("a/b"))

	bare := NewEndpoints(Config{BaseURL: "http://host"})
	assert.Equal(t, "http://host/accounts/", bare.Accounts())
}

func TestListAccounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"name":"A","price":"100.00","promo_price":"80.00","is_promo":true},
			{"id":2,"name":"B","price":50,"promo_price":null}]`)
	})

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, accounts[0].PromoPrice.Valid)
	assert.False(t, accounts[1].PromoPrice.Valid)
}

func TestGetAccountNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	})

	_, err := c.GetAccount(context.Background(), 9)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Not found.", apiErr.Detail)
}

func TestCreateAccountSendsPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A", body["name"])
		assert.Equal(t, "100", body["price"])
		assert.Nil(t, body["promo_price"])
		cards := body["player_cards"].([]any)
		assert.Len(t, cards, 1)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":5,"name":"A","price":"100"}`)
	})

	acc, err := c.CreateAccount(context.Background(), &models.AccountInput{
		Name:        "A",
		Price:       decimal.NewFromInt(100),
		PlayerCards: []models.CardInput{{Category: models.CategoryForwards, Image: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), acc.ID)
}

func TestUpdateAccountFieldErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/accounts/3/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"price":["Ensure this value is greater than 0."],"name":"required","player_cards":[{"category":["bad"]}]}`)
	})

	_, err := c.UpdateAccount(context.Background(), 3, &models.AccountInput{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
	assert.Equal(t, []string{"required"}, apiErr.FieldErrors["name"])
	assert.Equal(t, []string{"Ensure this value is greater than 0."}, apiErr.FieldErrors["price"])
	assert.Equal(t, []string{`[{"category":["bad"]}]`}, apiErr.FieldErrors["player_cards"])

	msgs := apiErr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "name: required", msgs[0])
}

func TestDeleteAccountNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.DeleteAccount(context.Background(), 1))
}

func TestContactLink(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"link":"https://chat.example/g"}`)
		case http.MethodPost:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 2, "link": body["link"], "is_active": true})
		}
	})

	link, err := c.GetContactLink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example/g", link)

	out, err := c.SetContactLink(context.Background(), "https://chat.example/new")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example/new", out.Link)
	assert.True(t, out.IsActive)
}

func TestVerifyAdmin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/verify-admin/good/" {
			_, _ = io.WriteString(w, `{"valid":true}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"valid":false}`)
	})

	assert.NoError(t, c.VerifyAdmin(context.Background(), "good"))

	err := c.VerifyAdmin(context.Background(), "bad")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL})

	err := c.Ping(context.Background())
	var ue *UnreachableError
	require.True(t, errors.As(err, &ue))

	_, err = c.ListAccounts(context.Background())
	require.True(t, errors.As(err, &ue))
}

func TestDecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})
	_, err := c.ListAccounts(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	var ue *UnreachableError
	assert.False(t, errors.As(err, &ue))
}
