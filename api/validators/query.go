package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
)

const maxSearchLength = 512

// ParseID reads a positive integer path parameter.
func ParseID(r *http.Request, param string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		details := pkgerrors.FieldErrors{}.Add(param, "must be a positive integer")
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid path parameter").WithDetails(details)
	}
	return uint(value), nil
}

// SearchParam returns the trimmed search query parameter, bounded in length.
func SearchParam(r *http.Request) string {
	return SanitizeString(r.URL.Query().Get("search"), maxSearchLength)
}
