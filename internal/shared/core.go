// File: internal/shared/core.go
package shared

import (
	"context"
	"io"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// IdentityService is the boundary to the external identity provider.
// Sessions, credentials and verification-code delivery all live on the
// provider's side; the server only verifies tokens and, when the local
// mirror is out of sync, deletes the provider account.
type IdentityService interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	DeleteAccount(ctx context.Context, uid string) error
}

// MediaAsset describes an object stored on the media CDN.
type MediaAsset struct {
	URL    string
	FileID string
	Name   string
}

// MediaService uploads a file to the media CDN and returns the hosted asset.
// Callers are responsible for checking the declared media type first.
type MediaService interface {
	Upload(ctx context.Context, file io.Reader, fileName string) (*MediaAsset, error)
}
