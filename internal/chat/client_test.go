package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "<!DOCTYPE html><html></html>"}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL+"/v1", 5*time.Second)
	resp, err := client.Generate(context.Background(), Request{
		Model: "gpt-4o",
		Messages: []Message{
			{Role: "system", Content: "Write an ad"},
			{Role: "user", Content: "Java developer"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, Message{Role: "system", Content: "Write an ad"}, got.Messages[0])
	assert.Equal(t, Message{Role: "user", Content: "Java developer"}, got.Messages[1])

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "assistant", resp.Choices[0].Message.Role)
	assert.Equal(t, "<!DOCTYPE html><html></html>", resp.Choices[0].Message.Content)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewClient("bad", srv.URL+"/v1", 5*time.Second)
	_, err := client.Generate(context.Background(), Request{Model: "gpt-4o"})
	assert.Error(t, err)
}
