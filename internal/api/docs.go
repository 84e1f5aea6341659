package api

// @title modlog API
// @version 1.0
// @description Read-only browsing API over the persisted log record store and the archive inventory.

// @contact.name modlog
// @contact.url https://github.com/modlog/modlog

// @license.name MIT
// @license.url https://github.com/modlog/modlog/blob/main/LICENSE

// @host localhost:8585
// @BasePath /

// @schemes http

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Records
// @tag.description Persisted log record browsing

// @tag.name Archives
// @tag.description Gzip archive inventory

// @tag.name System
// @tag.description Version information
