package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
)

// AssetsWithCache serves fsys and applies Cache-Control, Vary, and ETag handling.
// Requests must already have the mount prefix stripped. Files whose ETag could
// not be computed are still served without one; the error reports them.
func AssetsWithCache(fsys fs.FS) (http.Handler, error) {
	etags, err := ETags(fsys)
	files := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
		if et := etags[strings.TrimPrefix(r.URL.Path, "/")]; et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	}), err
}

// ETags returns the ETag computed for every readable file in fsys, keyed by
// slash path. Unreadable files are skipped and joined into the error.
func ETags(fsys fs.FS) (map[string]string, error) {
	out := map[string]string{}
	var failed []error
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		et, err := fileETag(fsys, path)
		if err != nil {
			failed = append(failed, fmt.Errorf("etag %s: %w", path, err))
			return nil
		}
		out[path] = et
		return nil
	})
	if err != nil {
		failed = append(failed, err)
	}
	return out, errors.Join(failed...)
}

func fileETag(fsys fs.FS, path string) (string, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, nil
}
