package employeeform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	formerrors "github.com/apper-canvas/staffsync-program-correct/internal/employeeform/errors"

	"github.com/gabriel-vasile/mimetype"
)

// EncodePhoto reads an uploaded image and returns it as a data URL. Only the
// content type is checked; there is no size limit.
func EncodePhoto(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}

	mtype := mimetype.Detect(data)
	mediaType := strings.SplitN(mtype.String(), ";", 2)[0]
	if !strings.HasPrefix(mediaType, "image/") {
		return "", formerrors.ErrNotAnImage
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodePhotoDataURL returns the image bytes of a base64 data URL such as
// the one EncodePhoto produces.
func DecodePhotoDataURL(dataURL string) (io.Reader, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, formerrors.ErrNotAnImage
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, formerrors.ErrNotAnImage
	}
	return bytes.NewReader(data), nil
}
