// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	for _, value := range []any{"boom", 42, errors.New("db gone")} {
		logs := captureLogs(t)
		handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(value)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/post/1", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("panic(%v): status %d, want 500", value, rr.Code)
		}
		if !strings.Contains(logs.String(), "panic recovered") {
			t.Errorf("panic(%v): expected log entry", value)
		}
	}
}

func TestRecovererPassThrough(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()
	Recoverer(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !*called || rr.Code != http.StatusOK {
		t.Errorf("called=%v status=%d", *called, rr.Code)
	}
}

func TestRecovererRepanicsAbort(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
