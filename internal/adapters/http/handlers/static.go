package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/nishantarora/portfolio/internal/adapters/http/dto"
)

// CSSWriter writes a stylesheet. *render.Renderer implements it.
type CSSWriter interface {
	WriteCSS(w io.Writer) error
}

// Stylesheet handles GET /assets/highlight.css. The stylesheet is
// generated once, on first request.
func Stylesheet(css CSSWriter) gin.HandlerFunc {
	var (
		once sync.Once
		body []byte
		err  error
	)

	return func(c *gin.Context) {
		once.Do(func() {
			var buf bytes.Buffer
			if err = css.WriteCSS(&buf); err == nil {
				body = buf.Bytes()
			}
		})

		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.Data(http.StatusOK, "text/css; charset=utf-8", body)
	}
}

// Static serves the output tree: generated shells, the feed and the
// site's own assets. Directories are served through their index.html
// and never listed.
func Static(fsys afero.Fs) gin.HandlerFunc {
	// Names stay relative so in-memory and base-path filesystems agree.
	server := http.FileServer(afero.NewHttpFs(fsys).Dir("."))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			dto.AbortWithCode(c, dto.ErrorCodeNotFound, "no such page")
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if name == "" {
			name = "."
		}

		info, err := fsys.Stat(name)
		if err != nil {
			dto.AbortWithCode(c, dto.ErrorCodeNotFound, "no such page")
			return
		}

		if info.IsDir() {
			if ok, _ := afero.Exists(fsys, path.Join(name, "index.html")); !ok {
				dto.AbortWithCode(c, dto.ErrorCodeNotFound, "no such page")
				return
			}

			if !strings.HasSuffix(c.Request.URL.Path, "/") {
				c.Redirect(http.StatusMovedPermanently, c.Request.URL.Path+"/")
				return
			}
		}

		server.ServeHTTP(c.Writer, c.Request)
	}
}
