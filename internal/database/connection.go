/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	// SQL Server driver, registered as "sqlserver"
	_ "github.com/denisenkom/go-mssqldb"

	"mssql-mcp/internal/logging"
)

// ConnectionConfig holds the settings needed to reach a SQL Server instance
type ConnectionConfig struct {
	Server   string
	Port     int
	Database string
	User     string
	Password string
	Encrypt  string
}

// BuildConnectionString renders the config as a sqlserver:// URL
func (c ConnectionConfig) BuildConnectionString() (string, error) {
	if c.Server == "" || c.User == "" {
		return "", fmt.Errorf("server and user are required")
	}

	host := c.Server
	if c.Port > 0 {
		host = c.Server + ":" + strconv.Itoa(c.Port)
	}

	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(c.User, c.Password),
		Host:   host,
	}

	q := url.Values{}
	if c.Database != "" {
		q.Set("database", c.Database)
	}
	encrypt := c.Encrypt
	if encrypt == "" {
		encrypt = "disable"
	}
	q.Set("encrypt", encrypt)
	q.Set("app name", "mssql-mcp")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Redacted returns a loggable description of the target without the password
func (c ConnectionConfig) Redacted() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Server, c.Port, c.Database)
}

// Client is the process-wide database handle. It is configured once via a
// connect-style call and read by every subsequent operation; only one
// request is ever in flight at a time, so the mutex guards the rare
// reconfiguration, not concurrent queries.
type Client struct {
	db  *sql.DB
	cfg ConnectionConfig
	mu  sync.RWMutex
}

// NewClient creates an unconfigured client
func NewClient() *Client {
	return &Client{}
}

// Configure opens a connection with the given settings, verifies it with a
// bounded ping, and swaps it in as the process-wide handle. The previous
// handle, if any, is closed.
func (c *Client) Configure(cfg ConnectionConfig) error {
	connStr, err := cfg.BuildConnectionString()
	if err != nil {
		return err
	}

	start := time.Now()

	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		logging.Error("database connection failed",
			"target", cfg.Redacted(), "error", err.Error())
		return fmt.Errorf("failed to connect to %s: %w", cfg.Redacted(), err)
	}

	c.mu.Lock()
	old := c.db
	c.db = db
	c.cfg = cfg
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	logging.Info("database connected",
		"target", cfg.Redacted(),
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

// DB returns the configured handle or ErrNotConfigured
func (c *Client) DB() (*sql.DB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, ErrNotConfigured
	}
	return c.db, nil
}

// IsConfigured reports whether a connection has been established
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db != nil
}

// Target returns a redacted description of the current connection target
func (c *Client) Target() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return "(not connected)"
	}
	return c.cfg.Redacted()
}

// Close releases the underlying handle
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
}
