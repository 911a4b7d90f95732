package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/exercise-tracker/internal/config"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "verbose"}
	assert.Error(t, run(context.Background(), cfg))
}

func TestRun_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cfg := &config.Config{
		AppHost:           "127.0.0.1",
		AppPort:           freePort(t),
		LogLevel:          "debug",
		PGHost:            pgHost,
		PGPort:            pgPort.Int(),
		PGUser:            "user",
		PGPassword:        "password",
		PGDB:              "testdb",
		PGMaxOpenConns:    5,
		PGMaxIdleConns:    2,
		StoreTimeout:      5 * time.Second,
		RedisHost:         redisHost,
		RedisPort:         redisPort.Int(),
		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		RedisExpSecond:    60,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(runCtx, cfg)
	}()

	baseURL := fmt.Sprintf("http://%s", cfg.HTTPAddr())
	client := resty.New().SetBaseURL(baseURL)

	require.Eventually(t, func() bool {
		resp, err := client.R().Get("/healthz")
		return err == nil && resp.StatusCode() == http.StatusOK
	}, 20*time.Second, 200*time.Millisecond)

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	resp, err := client.R().
		SetBody(map[string]string{"username": "alice"}).
		SetResult(&user).
		Post("/api/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "alice", user.Username)

	resp, err = client.R().SetBody(map[string]string{"username": "alice"}).Post("/api/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]any{"description": "run", "duration": 30, "date": "2023-01-15"}).
		Post("/api/users/" + user.ID + "/exercises")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t,
		`{"id":"`+user.ID+`","username":"alice","date":"Sun Jan 15 2023","duration":30,"description":"run"}`,
		string(resp.Body()))

	for i := 0; i < 2; i++ {
		resp, err = client.R().
			SetQueryParams(map[string]string{"from": "2023-01-01", "to": "2023-01-31"}).
			Get("/api/users/" + user.ID + "/logs")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		assert.JSONEq(t,
			`{"id":"`+user.ID+`","username":"alice","count":1,"log":[{"description":"run","duration":30,"date":"Sun Jan 15 2023"}]}`,
			string(resp.Body()))
	}

	resp, err = client.R().Get("/api/users/ffffffffffffffffffffffffffffffff/logs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	cancel()
	select {
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	case err := <-errCh:
		assert.NoError(t, err)
	}
}
