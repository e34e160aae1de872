// Package report renders comparison JSON reports as standalone HTML
// dashboards for reviewing translations side by side.
package report
