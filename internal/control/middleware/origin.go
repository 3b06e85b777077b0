// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ManuGH/capctl/internal/control/http/problem"
)

// CrossOriginGuard rejects state-changing browser requests coming from
// another origin. The API listens on loopback, so without this any web page
// could start a recording. Requests that carry no browser origin headers
// (CLI clients) pass.
func CrossOriginGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if site := r.Header.Get("Sec-Fetch-Site"); site != "" && site != "same-origin" && site != "none" {
			writeForbidden(w, r, "cross-site request rejected")
			return
		}

		origin := requestOrigin(r)
		if origin != "" && !sameOrigin(origin, r) {
			writeForbidden(w, r, "origin not trusted")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeForbidden(w http.ResponseWriter, r *http.Request, detail string) {
	problem.Write(w, r, http.StatusForbidden, "api/cross_origin", "Forbidden", "CROSS_ORIGIN_FORBIDDEN", detail, nil)
}

// requestOrigin returns the Origin header, falling back to the Referer's
// scheme and host. "null" origins are treated as foreign.
func requestOrigin(r *http.Request) string {
	if o := strings.TrimSpace(r.Header.Get("Origin")); o != "" {
		return o
	}
	ref := r.Header.Get("Referer")
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "null"
	}
	return u.Scheme + "://" + u.Host
}

func sameOrigin(origin string, r *http.Request) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if !strings.EqualFold(u.Scheme, scheme) {
		return false
	}
	return strings.EqualFold(hostPort(u.Host, scheme), hostPort(r.Host, scheme))
}

func hostPort(host, scheme string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	if scheme == "https" {
		return net.JoinHostPort(host, "443")
	}
	return net.JoinHostPort(host, "80")
}
