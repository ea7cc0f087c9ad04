package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Circlesfera/circlesfera-backend-sub000/internal/feed"
)

func respond(err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, err)
	return rec
}

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"api error passthrough", NewForbidden("nope"), http.StatusForbidden, CodeForbidden},
		{"wrapped api error", fmt.Errorf("handler: %w", NewInvalidInput("bad")), http.StatusBadRequest, CodeInvalidInput},
		{"missing content", feed.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"wrapped missing content", fmt.Errorf("related: %w", feed.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"unclassified", errors.New("pg down"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := respond(tc.err)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body does not decode: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tc.code)
			}
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	rec := respond(errors.New("password=hunter2 dial failed"))
	if body := rec.Body.String(); strings.Contains(body, "hunter2") {
		t.Errorf("internal error detail leaked to the client: %s", body)
	}
}
