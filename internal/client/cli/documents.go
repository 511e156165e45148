package cli

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Attach uploads a local file as one of the session user's credential
// documents.
func (a *App) Attach(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter file path", a.out)
	if err != nil {
		return err
	}
	body, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	key, err := a.userService.AttachDocument(ctx, filepath.Base(path), contentTypeOf(path, body), body)
	if err != nil {
		return err
	}
	if err := a.refreshUser(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s\n", key)
	return nil
}

func contentTypeOf(path string, body []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(body)
}

// Docs lists the session user's uploads, pending ones included.
func (a *App) Docs(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	list, err := a.userService.Documents(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No documents.")
		return nil
	}
	for _, d := range list {
		fmt.Fprintf(a.out, "%s  %s  %d bytes  %s  %s\n", d.ObjectKey, d.Name, d.Size, d.UploadStatus,
			d.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// DocURL prints a temporary download link for a document.
func (a *App) DocURL(ctx context.Context, key string) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	key, err := a.argOrPrompt(key, "Enter document key")
	if err != nil {
		return err
	}
	url, err := a.userService.DocumentURL(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}
