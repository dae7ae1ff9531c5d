// Package acl translates externally authored content into domain types.
//
// Metadata lists are JSON arrays written by hand. The DTOs here mirror
// that wire format and never leave the package: callers receive
// domain.Record values and domain errors. The same decoding serves the
// local filesystem store and the remote content host.
//
// Remote failures of any kind map to domain.ErrFetchFailed, including a
// 404 for a content body. A missing body is a broken site, not a missing
// page: the record itself exists in metadata.
package acl
