package notary

import (
	"context"
	"net/http"
	"time"
)

// LocalNotary is the development fallback used when no notary service is
// configured: the identity comes from the X-Wallet-Address header and the
// trusted time is the local clock.
type LocalNotary struct{}

func NewLocalNotary() *LocalNotary {
	return &LocalNotary{}
}

func (LocalNotary) Address(ctx context.Context, r *http.Request) (string, error) {
	return r.Header.Get("X-Wallet-Address"), nil
}

func (LocalNotary) Now(ctx context.Context) (time.Time, error) {
	return time.Now().UTC(), nil
}
