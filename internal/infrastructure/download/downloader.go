package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Importador-api/internal/application/importer"
	"golang.org/x/sync/errgroup"
)

var _ importer.Downloader = (*HTTPDownloader)(nil)

// maxConcurrent descargas simultáneas por llamada a Download.
const maxConcurrent = 4

// HTTPDownloader implementación del servicio de descargas sobre net/http.
// Download lanza las descargas en paralelo y espera a que todas terminen;
// las fallas individuales quedan registradas en cada item.
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader construye el servicio con un timeout por petición.
func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPDownloader{client: &http.Client{Timeout: timeout}}
}

// Resolve convierte la referencia en un descriptor de descarga. Solo se
// aceptan URLs http/https; cualquier otra cosa no es resoluble (nil).
func (d *HTTPDownloader) Resolve(rawURL, targetDir, seoName string) *importer.DownloadItem {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil
	}
	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".jpg"
	}
	if targetDir == "" {
		targetDir = os.TempDir()
	}
	return &importer.DownloadItem{
		URL:  u.String(),
		Path: filepath.Join(targetDir, seoName+ext),
	}
}

// Download ejecuta las descargas con concurrencia acotada y espera a que
// todas terminen. El error de retorno es solo de infraestructura local
// (crear el directorio destino); las fallas HTTP quedan en los items.
func (d *HTTPDownloader) Download(ctx context.Context, items ...*importer.DownloadItem) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, item := range items {
		item := item
		g.Go(func() error {
			d.fetch(ctx, item)
			return nil
		})
	}
	return g.Wait()
}

func (d *HTTPDownloader) fetch(ctx context.Context, item *importer.DownloadItem) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		item.ErrorMessage = err.Error()
		return
	}
	resp, err := d.client.Do(req)
	if err != nil {
		item.ErrorMessage = err.Error()
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		item.ErrorMessage = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return
	}

	if err := os.MkdirAll(filepath.Dir(item.Path), 0o755); err != nil {
		item.ErrorMessage = err.Error()
		return
	}
	out, err := os.Create(item.Path)
	if err != nil {
		item.ErrorMessage = err.Error()
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		item.ErrorMessage = err.Error()
		return
	}

	if mime := resp.Header.Get("Content-Type"); mime != "" {
		item.MimeType = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	} else {
		// Sin Content-Type: deducir el mime del contenido descargado.
		if _, err := out.Seek(0, io.SeekStart); err == nil {
			head := make([]byte, 512)
			if n, _ := out.Read(head); n > 0 {
				item.MimeType = http.DetectContentType(head[:n])
			}
		}
	}
	item.Success = true
}
