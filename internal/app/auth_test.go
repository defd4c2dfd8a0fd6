package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestAuthKey(t *testing.T) {
	a := &Auth{keyTemplate: "auth:interviewer:{interviewer}"}
	assert.Equal(t, "auth:interviewer:jdoe", a.key("jdoe"))
}

func TestNewAuthBadURL(t *testing.T) {
	config := &Config{}
	config.Server.EnableAuth = true
	config.Auth.RedisURL = "not-a-url"

	_, err := NewAuth(config)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping redis integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	config, err := ParseConfig("sample.toml", []byte(sampleConfig))
	require.NoError(t, err)
	config.Server.EnableAuth = true
	config.Auth.RedisURL = fmt.Sprintf("redis://%s/0", endpoint)

	auth, err := NewAuth(config)
	require.NoError(t, err)
	defer auth.Close()

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	defer client.Close()
	require.NoError(t, client.HSet(ctx, "auth:interviewer:jdoe", "token", "s3cret").Err())

	require.NoError(t, auth.ValidateToken(ctx, "jdoe", "s3cret"))
	assert.ErrorIs(t, auth.ValidateToken(ctx, "jdoe", "guess"), ErrInvalidToken)
	assert.ErrorIs(t, auth.ValidateToken(ctx, "nobody", "s3cret"), ErrUnknownInterviewer)
	assert.ErrorIs(t, auth.ValidateToken(ctx, "", "s3cret"), ErrUnknownInterviewer)

	count, err := client.HGet(ctx, "auth:interviewer:jdoe", "request_count").Int()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	service := &Service{Config: config, Auth: auth}
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Error(t, service.ValidateAuth(r, "jdoe"), "missing bearer prefix")
	r.Header.Set("Authorization", "Bearer s3cret")
	assert.NoError(t, service.ValidateAuth(r, "jdoe"))
}
