package contracts

import "context"

// Opener hands a local file to the desktop's default application.
type Opener interface {
	Open(ctx context.Context, path string) error
}
