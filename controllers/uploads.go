package controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"project/utils"
)

// maxUploadBytes caps a single attachment at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler stores a multipart file in the attachment bucket and returns
// its public URL.
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form or file too large"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "file field is required"})
		return
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)
	objectKey := fmt.Sprintf("attachments/%d_%s", time.Now().UnixNano(), name)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := utils.UploadAttachment(r.Context(), objectKey, file, header.Size, contentType)
	if err != nil {
		log.Printf("[uploads] store failed: %v", err)
		serverError(w)
		return
	}
	created(w, map[string]interface{}{"url": url, "name": name})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('-')
		}
	}
	out := b.String()
	if out == "" || out == "." {
		out = "file"
	}
	return out
}
