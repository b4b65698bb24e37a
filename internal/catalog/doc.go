// Package catalog loads the static product catalog and resolves object
// names to product IDs.
//
// The catalog is process-scoped immutable configuration: it is read from a
// JSON file once at startup and injected into the handlers that need it.
// Resolution is deterministic and order-dependent — products are tested in
// file order, product name before keywords, and the first match wins.
package catalog
