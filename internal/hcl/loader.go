package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/projector/internal/config"
	"github.com/specialistvlad/projector/internal/ctxlog"
	"github.com/specialistvlad/projector/internal/fsutil"
	"github.com/specialistvlad/projector/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file found at paths (files or directories, walked
// recursively) and merges their declarations in path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access declarations path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk declarations directory %s: %w", path, err)
		}
		if len(found) == 0 {
			logger.Warn("No .hcl declaration files found in path", "path", path)
		}
		files = append(files, found...)
	}
	logger.Debug("Found HCL files to load", "files", files)

	model := &config.Model{}
	for _, filePath := range files {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		fileModel, err := l.decode(ctx, hclFile, filePath)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
		logger.Debug("Successfully loaded declarations from HCL file", "file", filePath)
	}

	logger.Info("Declarations loaded successfully.", "files", len(files), "components", len(model.Components))
	return model, nil
}

// LoadSource parses a single in-memory declaration document.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, hclFile, filename)
}

func (l *Loader) decode(ctx context.Context, hclFile *hcl.File, filePath string) (*config.Model, error) {
	var file schema.File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode declarations in %s: %w", filePath, diags)
	}
	model, diags := translate(ctx, &file, filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid declarations in %s: %w", filePath, diags)
	}
	return model, nil
}
