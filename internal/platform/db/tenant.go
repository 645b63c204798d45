package db

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Each deployment region (typically a district health administration) gets
// its own Postgres schema named tenant_<id>, so one database can serve
// several districts without mixing their citizen data. The middleware below
// pins a request to its schema; repositories pick the pinned connection up
// through ConnFromContext.

type contextKey string

const (
	tenantKey contextKey = "tenant_id"
	connKey   contextKey = "db_conn"
)

// Tenant IDs become schema name fragments, so only identifier-safe
// characters are allowed. Postgres caps identifiers at 63 bytes; "tenant_"
// takes 7 of them.
var tenantIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,56}$`)

// TenantMiddleware resolves the request's tenant, acquires a connection
// scoped to the tenant's schema, and stores both on the request context for
// the repository layer.
func TenantMiddleware(pool *pgxpool.Pool, defaultTenant string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tenantID := resolveTenant(c, defaultTenant)

			if !tenantIDPattern.MatchString(tenantID) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant identifier")
			}

			ctx := c.Request().Context()
			conn, err := pool.Acquire(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
			defer conn.Release()

			// shared holds catalog data (facilities, schemes) common to all
			// districts.
			setPath := fmt.Sprintf("SET search_path TO tenant_%s, shared, public", tenantID)
			if _, err := conn.Exec(ctx, setPath); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "tenant resolution failed")
			}

			ctx = context.WithValue(ctx, tenantKey, tenantID)
			ctx = context.WithValue(ctx, connKey, conn)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("tenant_id", tenantID)

			return next(c)
		}
	}
}

// resolveTenant picks the tenant for a request. The JWT claim wins so a
// logged-in user cannot hop districts by editing headers; the header and
// query forms exist for unauthenticated routes and operational tooling.
func resolveTenant(c echo.Context, defaultTenant string) string {
	if tid, ok := c.Get("jwt_tenant_id").(string); ok && tid != "" {
		return tid
	}
	if tid := c.Request().Header.Get("X-Tenant-ID"); tid != "" {
		return tid
	}
	if tid := c.QueryParam("tenant_id"); tid != "" {
		return tid
	}
	return defaultTenant
}

// ConnFromContext returns the schema-pinned connection placed on the request
// context by TenantMiddleware, or nil outside a tenant-scoped request.
func ConnFromContext(ctx context.Context) *pgxpool.Conn {
	conn, _ := ctx.Value(connKey).(*pgxpool.Conn)
	return conn
}

// TenantFromContext returns the resolved tenant ID, or "" when the request
// was not tenant-scoped.
func TenantFromContext(ctx context.Context) string {
	tid, _ := ctx.Value(tenantKey).(string)
	return tid
}

// CreateTenantSchema provisions the schema for a new district deployment and
// optionally applies all migrations to it. An empty migrationsDir skips the
// migration step so operators can create first and migrate later.
func CreateTenantSchema(ctx context.Context, pool *pgxpool.Pool, tenantID string, migrationsDir string) error {
	if !tenantIDPattern.MatchString(tenantID) {
		return fmt.Errorf("invalid tenant identifier: %s", tenantID)
	}

	schema := fmt.Sprintf("tenant_%s", tenantID)

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}

	if migrationsDir != "" {
		migrator := NewMigrator(pool, migrationsDir)
		if _, err := migrator.Up(ctx, schema); err != nil {
			return fmt.Errorf("run migrations for %s: %w", schema, err)
		}
	}

	return nil
}
