package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// LoadTemplates parses every *.html file at the root of fsys. base.html, when
// present, is parsed first so pages can reference the blocks it defines.
func LoadTemplates(fsys fs.FS, funcs template.FuncMap) (*template.Template, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	sort.Strings(files)

	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if path.Base(file) == "base.html" {
			ordered = append(ordered, file)
		}
	}
	for _, file := range files {
		if path.Base(file) != "base.html" {
			ordered = append(ordered, file)
		}
	}

	root := template.New(path.Base(ordered[0])).Funcs(funcs)

	if _, err := root.ParseFS(fsys, ordered...); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return root, nil
}

// AssetHasher versions static files by content hash. Embedded files carry no
// modification time, so the hash stands in for one.
type AssetHasher struct {
	fsys   fs.FS
	prefix string

	mu     sync.Mutex
	hashes map[string]string
}

// NewAssetHasher hashes files from fsys served under the URL prefix.
func NewAssetHasher(fsys fs.FS, prefix string) *AssetHasher {
	return &AssetHasher{
		fsys:   fsys,
		prefix: "/" + strings.Trim(prefix, "/") + "/",
		hashes: make(map[string]string),
	}
}

func (h *AssetHasher) Version(urlPath string) (string, error) {
	if !strings.HasPrefix(urlPath, h.prefix) {
		return "", fmt.Errorf("asset %s is outside %s", urlPath, h.prefix)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if version, ok := h.hashes[urlPath]; ok {
		return version, nil
	}

	data, err := fs.ReadFile(h.fsys, strings.TrimPrefix(urlPath, h.prefix))
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	version := hex.EncodeToString(sum[:])[:12]
	h.hashes[urlPath] = version
	return version, nil
}
