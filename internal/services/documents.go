package services

import (
	"encoding/base64"
	"os"
)

// ReadDocument loads a document for a renderer that cannot open local
// files itself. It never fails; errors are reported in the payload.
func ReadDocument(path string) DocumentPayload {
	data, err := os.ReadFile(path)
	if err != nil {
		return DocumentPayload{Success: false, Path: path, Error: err.Error()}
	}
	return DocumentPayload{
		Success: true,
		Data:    base64.StdEncoding.EncodeToString(data),
		Path:    path,
	}
}
