package feed

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"campuslife/internal/common"
)

// The upload is simulated: a fixed short delay, then the image becomes a
// local data-URL reference. Presentation polish carried over from the
// original, not a real transfer.
const uploadDelay = 500 * time.Millisecond

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageUpload struct {
	Data []byte
	MIME string
}

func (s *feedService) UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	if len(uploads) == 0 {
		return []string{}, nil
	}
	if len(uploads) > s.cfg.MaxImages {
		return nil, common.Invalid("images", fmt.Sprintf("at most %d images", s.cfg.MaxImages))
	}
	for i, up := range uploads {
		if !allowedImageTypes[up.MIME] {
			return nil, common.Invalid("images", fmt.Sprintf("image %d: unsupported type %q", i+1, up.MIME))
		}
		if len(up.Data) > s.cfg.MaxImageBytes {
			return nil, common.Invalid("images", fmt.Sprintf("image %d exceeds %d bytes", i+1, s.cfg.MaxImageBytes))
		}
	}

	select {
	case <-time.After(uploadDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	refs := make([]string, 0, len(uploads))
	for _, up := range uploads {
		refs = append(refs, fmt.Sprintf("data:%s;base64,%s", up.MIME, base64.StdEncoding.EncodeToString(up.Data)))
	}
	return refs, nil
}
