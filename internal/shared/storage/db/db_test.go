package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nopDriver struct{}

func (nopDriver) Open(name string) (driver.Conn, error) { return nopConn{}, nil }

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }
func (nopConn) Ping(ctx context.Context) error            { return nil }

var registerOnce sync.Once

// useNopDriver routes Connect to a driver that accepts any DSN.
func useNopDriver(t *testing.T, failFirst bool) *int32 {
	t.Helper()
	registerOnce.Do(func() { sql.Register("dbtest", nopDriver{}) })

	var calls int32
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 && failFirst {
			return nil, driver.ErrBadConn
		}
		return sql.Open("dbtest", dsn)
	}

	shared.mu.Lock()
	shared.db = nil
	shared.mu.Unlock()

	t.Cleanup(func() {
		openDB = prev
		shared.mu.Lock()
		shared.db = nil
		shared.mu.Unlock()
	})
	return &calls
}

func TestSharedReusesPool(t *testing.T) {
	calls := useNopDriver(t, false)

	var wg sync.WaitGroup
	pools := make([]*sql.DB, 4)
	for i := range pools {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := Shared(context.Background(), "ignored", DefaultOptions(RoleLambda))
			if err != nil {
				t.Errorf("Shared: %v", err)
				return
			}
			pools[i] = conn
		}(i)
	}
	wg.Wait()

	for _, p := range pools[1:] {
		if p != pools[0] {
			t.Fatalf("expected one shared pool")
		}
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected one open, got %d", got)
	}
}

func TestSharedRetriesAfterFailure(t *testing.T) {
	useNopDriver(t, true)

	if _, err := Shared(context.Background(), "ignored", DefaultOptions(RoleLambda)); err == nil {
		t.Fatalf("expected first call to fail")
	}
	conn, err := Shared(context.Background(), "ignored", DefaultOptions(RoleLambda))
	if err != nil {
		t.Fatalf("expected second call to succeed: %v", err)
	}
	if conn == nil {
		t.Fatalf("expected pool after retry")
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultOptions(RoleServer)); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestDefaultOptionsByRole(t *testing.T) {
	cases := map[Role]int{RoleServer: 10, RoleLambda: 2, RoleMigrate: 1, Role("other"): 10}
	for role, want := range cases {
		if got := DefaultOptions(role).MaxOpenConns; got != want {
			t.Fatalf("DefaultOptions(%q).MaxOpenConns = %d, want %d", role, got, want)
		}
	}
}

func TestRuntimeRole(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	if RuntimeRole() != RoleServer {
		t.Fatalf("expected server role outside lambda")
	}
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "resume-api")
	if RuntimeRole() != RoleLambda {
		t.Fatalf("expected lambda role")
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	useNopDriver(t, false)

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultOptions(RoleServer))
	conn, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}
	want := Options{MaxOpenConns: 7, MaxIdleConns: 3, ConnMaxLifetime: 20 * time.Minute, ConnMaxIdleTime: 45 * time.Second, PingTimeout: time.Second}
	if opts != want {
		t.Fatalf("unexpected options %+v", opts)
	}
}
