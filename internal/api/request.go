package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "manufacturing-backend/internal/pkg/errors"
	"manufacturing-backend/internal/store"
)

// bindFields decodes a JSON object body. Numbers stay json.Number so text
// fields keep the digits the client sent.
func bindFields(c *gin.Context) (store.Fields, error) {
	if !isJSON(c.GetHeader("Content-Type")) {
		return nil, apperrors.Validation("Request must be JSON")
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var fields store.Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, apperrors.Validation("Invalid JSON body")
	}
	// The body must hold exactly one value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperrors.Validation("Invalid JSON body")
	}
	if fields == nil {
		fields = store.Fields{}
	}
	return fields, nil
}

// isJSON accepts application/json and any +json media type.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// pathID parses the :id segment. Anything that is not an integer cannot name
// a row, so it is reported as not found.
func pathID(c *gin.Context, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NotFound("%s not found", entity)
	}
	return id, nil
}
