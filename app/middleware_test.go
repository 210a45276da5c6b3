package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverPanic(t *testing.T) {
	app, _ := newTestApplication(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestAuthenticate(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	userID, token := registerAndLogin(t, ts, db, "authuser", "authuser@example.com")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.getUserContext(r) == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID *int
	}{
		{
			name:       "no header proceeds as anonymous",
			header:     "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid token",
			header:     "Bearer " + token,
			wantStatus: http.StatusOK,
			wantUserID: &userID,
		},
		{
			name:       "invalid token",
			header:     "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bare token without scheme",
			header:     token,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checked := next
			if tc.wantUserID != nil {
				checked = func(w http.ResponseWriter, r *http.Request) {
					user := app.getUserContext(r)
					assert.Equal(t, *tc.wantUserID, user.ID)
					w.WriteHeader(http.StatusOK)
				}
			}

			middleware := app.authenticate(checked)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, tc.wantStatus, res.Code)
			assert.Equal(t, "Authorization", res.Header().Get("Vary"))
		})
	}
}

func TestRequireAuthUser(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerAndLogin(t, ts, db, "required", "required@example.com")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		handler := app.authenticate(app.requireAuthUser(next))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("authenticated user passes", func(t *testing.T) {
		handler := app.authenticate(app.requireAuthUser(next))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
	})
}
