package dbexport

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
)

// DefaultDriver is the database/sql driver name registered by github.com/alexbrainman/odbc.
const DefaultDriver = "odbc"

// Environment is the process-wide handle every connection is opened through.
// It is built once by the composition root and shared; it holds no connections.
type Environment struct {
	driver string
	open   func(driver, dsn string) (*sql.DB, error)

	once    sync.Once
	initErr error
}

// NewEnvironment returns an Environment for the named database/sql driver.
// An empty name selects DefaultDriver.
func NewEnvironment(driver string) *Environment {
	if driver == "" {
		driver = DefaultDriver
	}
	return &Environment{driver: driver, open: sql.Open}
}

// Driver returns the driver name connections are opened with.
func (e *Environment) Driver() string { return e.driver }

func (e *Environment) init() error {
	e.once.Do(func() {
		if !slices.Contains(sql.Drivers(), e.driver) {
			e.initErr = newError(KindConnection, nil, "driver %q is not registered (available: %v)", e.driver, sql.Drivers())
		}
	})
	return e.initErr
}

// Connection is one live database connection. It is never pooled or shared.
type Connection struct {
	db   *sql.DB
	conn *sql.Conn
}

// Connect opens a new connection from a driver connection string.
// The handshake happens here, so a bad string, a missing driver or rejected
// credentials surface as a KindConnection error carrying the driver's message.
func (e *Environment) Connect(ctx context.Context, connString string) (*Connection, error) {
	if err := e.init(); err != nil {
		return nil, err
	}
	db, err := e.open(e.driver, connString)
	if err != nil {
		return nil, newError(KindConnection, err, "error opening %s connection", e.driver)
	}
	db.SetMaxOpenConns(1)
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, newError(KindConnection, err, "cannot connect to database")
	}
	return &Connection{db: db, conn: conn}, nil
}

// QueryContext runs query on the underlying connection.
func (c *Connection) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

// Close releases the connection and its pool.
func (c *Connection) Close() error {
	connErr := c.conn.Close()
	dbErr := c.db.Close()
	if connErr != nil {
		return fmt.Errorf("error closing connection: %w", connErr)
	}
	if dbErr != nil {
		return fmt.Errorf("error closing connection pool: %w", dbErr)
	}
	return nil
}
