package database

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfndi/stockpulse-go/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "stockpulse",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=stockpulse sslmode=disable", DSN(cfg))

	cfg.DatabaseURL = "postgres://u:p@db/prices"
	assert.Equal(t, "postgres://u:p@db/prices", DSN(cfg))
}

func TestPostgresDB_NilPool(t *testing.T) {
	db := &PostgresDB{Pool: nil}

	assert.NotPanics(t, func() { db.Close() })
	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestRedisClient_NilClient(t *testing.T) {
	client := &RedisClient{Client: nil}

	assert.NotPanics(t, func() { client.Close() })
	assert.Error(t, client.HealthCheck(context.Background()))
}

func TestNewRedisConnection(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client, err := NewRedisConnection(context.Background(), config.RedisConfig{
		Host: s.Host(),
		Port: mustPort(t, s.Port()),
	})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.HealthCheck(ctx))
	require.NoError(t, client.Set(ctx, "k", "v", 0))

	value, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, client.Delete(ctx, "k"))
	assert.False(t, s.Exists("k"))
}

func TestNewRedisConnection_Unreachable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	host, port := s.Host(), mustPort(t, s.Port())
	s.Close()

	_, err = NewRedisConnection(context.Background(), config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}

func TestTracedPool_Query(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT symbol FROM price_bars").
		WillReturnRows(pgxmock.NewRows([]string{"symbol"}).AddRow("TCS.NS"))

	traced := NewTracedPool(NewMockPoolAdapter(mock))
	rows, err := traced.Query(context.Background(), "SELECT symbol FROM price_bars")
	require.NoError(t, err)

	var symbols []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		symbols = append(symbols, s)
	}
	rows.Close()

	assert.Equal(t, []string{"TCS.NS"}, symbols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTracedPool_ExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM price_bars").WillReturnError(errors.New("locked"))

	traced := NewTracedPool(NewMockPoolAdapter(mock))
	_, err = traced.Exec(context.Background(), "DELETE FROM price_bars")
	assert.EqualError(t, err, "locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}
