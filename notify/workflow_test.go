package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerOnboarding(t *testing.T) {
	var got OnboardingEvent
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	require.True(t, c.Enabled())

	err := c.TriggerOnboarding(context.Background(), OnboardingEvent{
		Email: "grace@university.edu", FullName: "Grace Hopper",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", auth)
	assert.Equal(t, "grace@university.edu", got.Email)
	assert.Equal(t, "Grace Hopper", got.FullName)
}

func TestTriggerOnboarding_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	assert.Error(t, c.TriggerOnboarding(context.Background(), OnboardingEvent{Email: "x@y.z"}))
}

func TestTriggerOnboarding_Disabled(t *testing.T) {
	c := NewClient("", "")
	assert.False(t, c.Enabled())
	assert.NoError(t, c.TriggerOnboarding(context.Background(), OnboardingEvent{Email: "x@y.z"}))
}
