package httpserver

import (
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
)

var entryFields = []string{"url", "title", "notes"}

// decodeEntry reads url, title and notes from a urlencoded or multipart
// body. Each field must be present; an empty value is fine.
func decodeEntry(w http.ResponseWriter, r *http.Request, maxBytes int64) (models.Entry, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return models.Entry{}, &formError{msg: "body too large"}
		}
		return models.Entry{}, &formError{msg: "malformed form body"}
	}

	values := make(map[string]string, len(entryFields))
	for _, name := range entryFields {
		v, ok := r.PostForm[name]
		if !ok || len(v) == 0 {
			return models.Entry{}, &formError{msg: "missing field " + name}
		}
		values[name] = v[0]
	}

	return models.Entry{URL: values["url"], Title: values["title"], Notes: values["notes"]}, nil
}
