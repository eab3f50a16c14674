package hub

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxIconSize bounds uploaded icons; they are inlined into every script.
const MaxIconSize int64 = 512 * 1024

// DataURIFromFile converts an uploaded icon into a self-contained data URI.
func DataURIFromFile(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxIconSize+1))
	if err != nil {
		return "", fmt.Errorf("hub: read icon: %w", err)
	}
	if len(data) == 0 {
		return "", newValidationError("icon", "file is empty", nil)
	}
	if int64(len(data)) > MaxIconSize {
		return "", newValidationError("icon", "file is larger than "+humanize.IBytes(uint64(MaxIconSize)), nil)
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mediaType == "" || !strings.HasPrefix(mediaType, "image/") {
		mediaType = http.DetectContentType(data)
	}
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", newValidationError("icon", fmt.Sprintf("unsupported media type %s", mediaType), nil)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
