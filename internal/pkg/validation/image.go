package validation

import (
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const invalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// ImageProblem sniffs the uploaded content and returns a message when it is
// not an image. A nil header is not a problem.
func ImageProblem(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	if fh.Size == 0 {
		return "The submitted file is empty."
	}

	f, err := fh.Open()
	if err != nil {
		return invalidImageMessage
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
		return invalidImageMessage
	}
	return ""
}

// ContentType returns the sniffed MIME type of an upload, falling back to
// application/octet-stream.
func ContentType(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	f, err := fh.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}

