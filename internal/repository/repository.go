// Package repository is the document-store adapter: each repository maps one
// collection (items, categories) onto a postgres table reached through the
// shared pool and query builder.
package repository

import (
	"time"

	"github.com/Demonism0/inventory-application/pkg/metric"
)

func observe(m metric.Store, collection, operation string, start time.Time, err *error) {
	m.Query(collection, operation, time.Since(start))
	if err != nil && *err != nil {
		m.QueryFailed(collection, operation)
	}
}
