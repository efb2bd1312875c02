package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFakeGoogle(t *testing.T, token, userinfo http.HandlerFunc) *Verifier {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", token)
	mux.HandleFunc("/userinfo", userinfo)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	origToken, origUserinfo := tokenURL, userinfoURL
	tokenURL = ts.URL + "/token"
	userinfoURL = ts.URL + "/userinfo"
	t.Cleanup(func() {
		tokenURL = origToken
		userinfoURL = origUserinfo
	})

	return New(&Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "https://hidecraft.example/callback",
	})
}

func TestVerifyCode(t *testing.T) {
	v := withFakeGoogle(t,
		func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
			assert.Equal(t, "good-code", r.Form.Get("code"))
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		},
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{
				"id":             "prov-1",
				"email":          "jordan@acmeleather.com",
				"verified_email": true,
				"name":           "Jordan Reyes",
			})
		},
	)

	ident, err := v.VerifyCode(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "prov-1", ident.ProviderID)
	assert.Equal(t, "jordan@acmeleather.com", ident.Email)
	assert.Equal(t, "Jordan Reyes", ident.Name)
}

func TestVerifyCodeRejectsExpiredCode(t *testing.T) {
	v := withFakeGoogle(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	_, err := v.VerifyCode(context.Background(), "stale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired code")
}

func TestVerifyCodeRejectsUnverifiedEmail(t *testing.T) {
	v := withFakeGoogle(t,
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		},
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":             "prov-1",
				"email":          "jordan@acmeleather.com",
				"verified_email": false,
			})
		},
	)

	_, err := v.VerifyCode(context.Background(), "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email not verified")
}

func TestVerifyCodeRetriesOn5xx(t *testing.T) {
	var attempts atomic.Int32
	v := withFakeGoogle(t,
		func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			// the retried request carries the full form body again
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "flaky-code", r.Form.Get("code"))
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		},
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":             "prov-1",
				"email":          "jordan@acmeleather.com",
				"verified_email": true,
			})
		},
	)

	_, err := v.VerifyCode(context.Background(), "flaky-code")
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}
