// Package notary resolves the caller's identity and supplies trusted
// timestamps. Submissions are re-stamped with the notary's clock before they
// are treated as canonical, so a client cannot forge the stored timestamp.
package notary

import (
	"context"
	"net/http"
	"time"
)

// Notary is the external identity and trusted-time collaborator.
//
// Address returns the caller's identity for the given request, or an empty
// string when the caller simply has none. A non-nil error means the lookup
// itself failed, which callers treat differently from "no identity".
type Notary interface {
	Address(ctx context.Context, r *http.Request) (string, error)
	Now(ctx context.Context) (time.Time, error)
}
