// Package respond writes JSON responses.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody acknowledges an operation that has nothing else to return.
type MessageBody struct {
	Message string `json:"message"`
}

// encodeFailed is written when data cannot be marshalled; the status is lost.
var encodeFailed = []byte(`{"error":"failed to encode response"}` + "\n")

// JSON writes data as the response body. The body is marshalled before the
// status line goes out, so an unencodable value turns into a 500 instead of a
// truncated 200. A nil data writes headers only.
func JSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(code)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(encodeFailed)
		return
	}
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, ErrorBody{Error: message})
}

func Message(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, MessageBody{Message: message})
}
