//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"parkingbot/cmd/bootstrap"
	"parkingbot/cmd/bootstrap/components"
	"parkingbot/internal/infra/db"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/usecase/shared"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// SlackUsers is what the fake users.info endpoint knows about.
var SlackUsers = map[string]map[string]any{
	"U1": {"id": "U1", "name": "mjones", "profile": map[string]any{"real_name": "Mike Jones", "first_name": "Mike", "last_name": "Jones"}},
	"U2": {"id": "U2", "name": "bsmith", "profile": map[string]any{"real_name": "Bob Smith", "first_name": "Bob"}},
	"U3": {"id": "U3", "name": "cdoe", "profile": map[string]any{}},
}

// ------------------------------------------------------------
// バックエンドごとの設定を用意
// ------------------------------------------------------------
func PostgresConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := baseConfig(t)
	cfg.Store.Backend = config.StoreBackendPostgres
	cfg.DB = prepareDatabase(t, startPostgres(t))
	return cfg
}

func RedisConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := baseConfig(t)
	cfg.Store.Backend = config.StoreBackendRedis
	info := startRedis(t)
	// コンテナはテストプロセスごとに起動されるので DB 0 を共有しても衝突しない
	cfg.Redis.URL = fmt.Sprintf("redis://%s:%s/0", info.Host, info.Port.Port())
	return cfg
}

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.Slack.APIToken = "xoxb-e2e"
	cfg.Slack.APIURL = startFakeSlack(t).URL + "/"
	cfg.Store.Timeout = 5 * time.Second
	return cfg
}

// ------------------------------------------------------------
// Slack API のスタブ (users.info のみ)
// ------------------------------------------------------------
func startFakeSlack(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")

		user, ok := SlackUsers[r.Form.Get("user")]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "user_not_found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "user": user})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// ------------------------------------------------------------
// fx アプリケーションの構築
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, cfg config.Config) (*gin.Engine, shared.KeyValueStore) {
	t.Helper()

	var (
		router *gin.Engine
		kv     shared.KeyValueStore
	)

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			bootstrap.NewClock,
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.StoreModule,
		components.InfraModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &kv),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return router, kv
}

// ------------------------------------------------------------
// データベース準備関数
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) config.DBConfig {
	// プロセス毎に違うDB名を生成
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer adminPool.Close()

	// データベース作成をリトライ機構付きで実行
	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second)
			time.Sleep(waitTime)
			slog.Warn("データベース作成を再試行中", "attempt", attempts+1, "error", createErr.Error(), "retry_wait", waitTime)
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用のデータベース接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Asia/Tokyo",
	}
}

// ConnectPool opens a direct pool for assertions on kv_entries.
func ConnectPool(t *testing.T, cfg config.DBConfig) *pgxpool.Pool {
	t.Helper()
	pool, cleanup, err := db.Connect(cfg)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(cleanup)
	return pool
}

// ------------------------------------------------------------
// コンテナ起動関数
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func startPostgres(t *testing.T) ContainerInfo {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=256m", // PostgreSQLデータをRAMに載せてI/O削減
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off", // 耐久性よりパフォーマンスを優先
				"-c", "synchronous_commit=off", // 同期コミット無効
				"-c", "log_statement=none", // ログ無効化
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")
	})
	require.NotNil(t, postgresTestContainer, "PostgreSQLコンテナが起動していません")

	info, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "PostgreSQLコンテナ情報の取得に失敗")
	return info
}

func startRedis(t *testing.T) ContainerInfo {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "Redisコンテナの起動に失敗")
	})
	require.NotNil(t, redisTestContainer, "Redisコンテナが起動していません")

	info, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "Redisコンテナ情報の取得に失敗")
	return info
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	KV     shared.KeyValueStore
	Config config.Config

	// NewConfig picks the backend under test.
	NewConfig func(t *testing.T) config.Config
}

func (s *SharedSuite) SetupSuite() {
	require.NotNil(s.T(), s.NewConfig, "NewConfigが設定されていません")
	s.Config = s.NewConfig(s.T())
	s.Router, s.KV = buildE2EApp(s.T(), s.Config)
	require.NotNil(s.T(), s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSubTest() {
	s.ResetStore()
}

// ResetStore removes every key through the store itself, so it works for any backend.
func (s *SharedSuite) ResetStore() {
	ctx := context.Background()
	keys, err := s.KV.Scan(ctx, "")
	require.NoError(s.T(), err, "キー一覧の取得に失敗")
	for _, key := range keys {
		require.NoError(s.T(), s.KV.Delete(ctx, key), "キーの削除に失敗")
	}
}
