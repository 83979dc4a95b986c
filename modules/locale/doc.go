// Package locale serves translation tables and server-side key resolution
// under /i18n. POST /i18n/reload re-reads the tables from their source,
// which matters when they live in Postgres.
package locale
