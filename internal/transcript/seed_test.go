package transcript

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/parley/internal/domain"
)

const demoSeed = `
messages:
  - role: user
    author: Ada
    content: Can you summarise the report?
  - role: assistant
    content: |
      Sure. Revenue is up 4%.
`

func TestLoadSeed(t *testing.T) {
	inputs, err := LoadSeed(strings.NewReader(demoSeed))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, PostInput{Role: "user", Author: "Ada", Content: "Can you summarise the report?"}, inputs[0])
	assert.Equal(t, "Sure. Revenue is up 4%.\n", inputs[1].Content)

	empty, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = LoadSeed(strings.NewReader("messages:\n  - role: user\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestService(pub)
	inputs, err := LoadSeed(strings.NewReader(demoSeed))
	require.NoError(t, err)

	n, err := svc.Seed(ctx, inputs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	msgs, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "Assistant", msgs[1].Author)
	assert.Len(t, pub.msgs, 2)

	again, err := svc.Seed(ctx, inputs)
	require.NoError(t, err)
	assert.Zero(t, again, "a non-empty transcript is left alone")
}

func TestService_SeedStopsAtInvalidMessage(t *testing.T) {
	svc := newTestService(&recordingPublisher{})

	n, err := svc.Seed(context.Background(), []PostInput{
		{Role: "user", Content: "ok"},
		{Role: "robot", Content: "beep"},
	})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
