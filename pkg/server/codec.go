package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/gridcanvas/pkg/errors"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// wantsMsgpack reports whether the client asked for msgpack responses.
func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && (mt == contentTypeMsgpack || mt == "application/x-msgpack") {
			return true
		}
	}
	return false
}

// decode reads the request body into v as JSON or, with a msgpack content
// type, as msgpack. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) == 0 {
		return nil
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case contentTypeMsgpack, "application/x-msgpack":
		err = msgpack.Unmarshal(body, v)
	case "", contentTypeJSON:
		err = json.Unmarshal(body, v)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", mt)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode body")
	}
	return nil
}

// respond writes v with status in the encoding the client asked for.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsMsgpack(r) {
		data, err := msgpack.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)
		_, _ = w.Write(data)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type errorBody struct {
	Code    errors.Code `json:"code" msgpack:"code"`
	Message string      `json:"message" msgpack:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error" msgpack:"error"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPalette, errors.ErrCodeInvalidScript:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound, errors.ErrCodeComponentNotFound:
		return http.StatusNotFound
	case errors.ErrCodeConflict, errors.ErrCodeBusy:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err as an error response. Errors without a code are
// reported as INTERNAL_ERROR.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respond(w, r, statusFor(code), errorResponse{Error: errorBody{Code: code, Message: errors.UserMessage(err)}})
}
