package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so that logs can be
// aggregated and queried by field.
const (
	// ========================================================================
	// Request correlation
	// ========================================================================
	KeyRequestID = "request_id" // HTTP request ID for correlation
	KeyClientIP  = "client_ip"  // Client IP address
	KeyUsername  = "username"   // Authenticated username
	KeyCaller    = "caller"     // Acting principal's owner id (0 = admin)

	// ========================================================================
	// Document tree
	// ========================================================================
	KeyDocRoot    = "doc_root"    // Document root key
	KeyPath       = "path"        // Full relative path within the root
	KeyParentPath = "parent_path" // Parent directory path
	KeyFilename   = "filename"    // File or folder name (basename)
	KeyOldPath    = "old_path"    // Source path for rename/move operations
	KeyNewPath    = "new_path"    // Destination path for rename/move operations
	KeyOrdinal    = "ordinal"     // Sibling position
	KeySize       = "size"        // Content size in bytes
	KeyPublic     = "public"      // Public visibility flag
	KeyEntries    = "entries"     // Number of rows listed/updated/removed

	// ========================================================================
	// Search
	// ========================================================================
	KeyQuery      = "query"       // Search query text
	KeySearchMode = "search_mode" // MATCH_ANY, MATCH_ALL, REGEX
	KeyMatches    = "matches"     // Number of search hits

	// ========================================================================
	// Operation metadata
	// ========================================================================
	KeyOperation  = "operation"   // Engine or service operation name
	KeyComponent  = "component"   // Subsystem emitting the log line
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyStatus     = "status"      // HTTP status code

	// ========================================================================
	// HTTP surface
	// ========================================================================
	KeyMethod = "method" // HTTP method
	KeyRoute  = "route"  // Matched route pattern
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// RequestID returns a slog.Attr for the HTTP request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// ClientIP returns a slog.Attr for the client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// Username returns a slog.Attr for the authenticated username
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// Caller returns a slog.Attr for the acting principal's owner id
func Caller(id int64) slog.Attr {
	return slog.Int64(KeyCaller, id)
}

// DocRoot returns a slog.Attr for the document root key
func DocRoot(key string) slog.Attr {
	return slog.String(KeyDocRoot, key)
}

// Path returns a slog.Attr for a full relative path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// ParentPath returns a slog.Attr for a parent directory path
func ParentPath(p string) slog.Attr {
	return slog.String(KeyParentPath, p)
}

// Filename returns a slog.Attr for a file or folder name
func Filename(name string) slog.Attr {
	return slog.String(KeyFilename, name)
}

// OldPath returns a slog.Attr for the source path of a rename/move
func OldPath(p string) slog.Attr {
	return slog.String(KeyOldPath, p)
}

// NewPath returns a slog.Attr for the destination path of a rename/move
func NewPath(p string) slog.Attr {
	return slog.String(KeyNewPath, p)
}

// Ordinal returns a slog.Attr for a sibling position
func Ordinal(n int32) slog.Attr {
	return slog.Int(KeyOrdinal, int(n))
}

// Size returns a slog.Attr for a content size in bytes
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// Public returns a slog.Attr for the public visibility flag
func Public(p bool) slog.Attr {
	return slog.Bool(KeyPublic, p)
}

// Entries returns a slog.Attr for a row count
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Query returns a slog.Attr for a search query
func Query(q string) slog.Attr {
	return slog.String(KeyQuery, q)
}

// SearchMode returns a slog.Attr for a search mode
func SearchMode(mode string) slog.Attr {
	return slog.String(KeySearchMode, mode)
}

// Matches returns a slog.Attr for the number of search hits
func Matches(n int) slog.Attr {
	return slog.Int(KeyMatches, n)
}

// Operation returns a slog.Attr for an operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Component returns a slog.Attr for the emitting subsystem
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Method returns a slog.Attr for an HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// Route returns a slog.Attr for a matched route pattern
func Route(r string) slog.Attr {
	return slog.String(KeyRoute, r)
}
