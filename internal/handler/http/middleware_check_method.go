// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 whenever a request path
// matches a registered route but the HTTP method is not handled. This
// function overrides that: an unsupported method on a known path yields 404
// instead, hiding the existence of the route from callers probing with the
// wrong verb.
//
// The lookup compares each registered route's pattern against the raw request
// path; parameterised segments are not expanded during this check, so routes
// with URL parameters fall through to the 404 branch.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
