package file

import (
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"
)

type opener interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

// Router sends s3:// paths to the bucket source and everything else to the
// local directory.
type Router struct {
	Local  opener
	Remote opener
}

func (r Router) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if strings.HasPrefix(sourcePath, "s3://") {
		if r.Remote == nil {
			return nil, errors.New("s3 sources are not configured")
		}
		return r.Remote.Open(ctx, sourcePath)
	}
	return r.Local.Open(ctx, sourcePath)
}
