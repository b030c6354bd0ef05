package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TokenSource supplies the bearer token. The token is managed outside this
// service; an empty token means the caller is not signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return strings.TrimSpace(string(t)), nil
}

// FileToken re-reads the file on every call so an external refresher can rotate it.
type FileToken struct {
	Path string
}

func (f FileToken) Token(context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
