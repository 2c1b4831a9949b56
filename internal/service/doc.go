// Package service provides the capability registry. Providers register a
// definition and receive tool calls dispatched by dot-separated tool ID
// (family.operation). The registry is safe for concurrent use.
package service
