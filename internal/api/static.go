// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/respond"
)

const spaIndex = "index.html"

// notFound handles every request no route matched.
//
// With a static directory configured, non-API GETs are answered by the
// single-page frontend: an existing file is served as is and any other path
// gets index.html so client-side routing can take over.
func notFound(staticDir string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		isPage := request.Method == http.MethodGet || request.Method == http.MethodHead
		isAPI := request.URL.Path == "/api" || strings.HasPrefix(request.URL.Path, "/api/")

		if staticDir == "" || !isPage || isAPI {
			respond.Error(writer, request, apperr.NotFound("Route"))
			return
		}

		name := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			http.ServeFile(writer, request, name)
			return
		}

		http.ServeFile(writer, request, filepath.Join(staticDir, spaIndex))
	}
}
