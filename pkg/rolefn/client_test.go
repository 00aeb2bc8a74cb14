package rolefn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GrantSendsBearerAndBody(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody GrantRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true,"role":"admin"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/functions/v1/", time.Second)
	err := c.Grant(context.Background(), "tok", "user-1", "admin")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/functions/v1/grant-role", gotPath)
	assert.Equal(t, GrantRequest{TargetUserID: "user-1", Role: "admin"}, gotBody)
}

func TestClient_RevokeSurfacesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/revoke-role", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Only super admins can change roles"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Revoke(context.Background(), "tok", "user-1")
	require.Error(t, err)

	var remote *Error
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusForbidden, remote.StatusCode)
	assert.Equal(t, "Only super admins can change roles", remote.Message)
}

func TestClient_NonJSONErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Revoke(context.Background(), "tok", "user-1")
	var remote *Error
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "Failed", remote.Message)
}
