package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_SubscriptionFilter(t *testing.T) {
	c := &Client{id: "c"}

	assert.True(t, c.Wants("state.updated"), "no subscription receives everything")

	c.Subscribe([]string{"backup.created"})
	assert.True(t, c.Wants("backup.created"))
	assert.False(t, c.Wants("state.updated"))

	c.Subscribe(nil)
	assert.True(t, c.Wants("state.updated"))
}

func TestClient_HandleFrame(t *testing.T) {
	c := &Client{id: "c"}

	c.handleFrame([]byte(`{"subscribe":["state.updated"]}`))
	assert.False(t, c.Wants("backup.created"))

	c.handleFrame([]byte(`not json`))
	assert.True(t, c.Wants("state.updated"), "malformed frames leave the filter alone")
	assert.False(t, c.Wants("backup.created"))
}
