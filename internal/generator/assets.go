package generator

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-codelab/pkg/storage"
)

type assetCopySummary struct {
	Built   int
	Skipped int
}

// copyContentAssets mirrors the corpus asset tree into the output under
// assets/. Files pass through unchanged; the manifest checksum decides
// whether an unchanged file can be skipped on incremental builds.
func (s *service) copyContentAssets(
	ctx context.Context,
	buildCtx *BuildContext,
	manifest *buildManifest,
	assetKeys map[string]struct{},
) (assetCopySummary, error) {
	summary := assetCopySummary{}
	if s.deps.Assets == nil {
		return summary, nil
	}

	err := fs.WalkDir(s.deps.Assets, ".", func(walkPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(walkPath)
		data, err := fs.ReadFile(s.deps.Assets, walkPath)
		if err != nil {
			return err
		}

		source := "content::" + rel
		dest := path.Join("assets", rel)
		built, err := s.writeAsset(ctx, buildCtx, manifest, source, dest, data)
		if err != nil {
			return err
		}
		assetKeys[source] = struct{}{}
		if built {
			summary.Built++
		} else {
			summary.Skipped++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// copyThemeAssets copies the files enumerated by the theme manifest into the
// output under assets/theme/.
func (s *service) copyThemeAssets(
	ctx context.Context,
	buildCtx *BuildContext,
	manifest *buildManifest,
	assetKeys map[string]struct{},
) (assetCopySummary, error) {
	summary := assetCopySummary{}
	if buildCtx.Selection == nil || strings.TrimSpace(s.cfg.ThemeDir) == "" {
		return summary, nil
	}

	themeFS := s.themeFS()
	if themeFS == nil {
		return summary, nil
	}

	for _, asset := range collectManifestAssets(buildCtx.Selection) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}
		data, err := fs.ReadFile(themeFS, asset)
		if err != nil {
			return summary, err
		}
		source := "theme::" + asset
		dest := path.Join("assets", "theme", asset)
		built, err := s.writeAsset(ctx, buildCtx, manifest, source, dest, data)
		if err != nil {
			return summary, err
		}
		assetKeys[source] = struct{}{}
		if built {
			summary.Built++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

func (s *service) writeAsset(
	ctx context.Context,
	buildCtx *BuildContext,
	manifest *buildManifest,
	source, dest string,
	data []byte,
) (bool, error) {
	checksum := computeHash(data)
	if manifest != nil && s.incremental(buildCtx.Options) && manifest.shouldSkipAsset(source, checksum, dest) {
		return false, nil
	}

	req := storage.WriteRequest{
		Path:        dest,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    storage.CategoryAsset,
		ContentType: detectAssetContentType(dest),
		Checksum:    checksum,
		Metadata:    map[string]string{"source": source},
	}
	if err := s.deps.Store.WriteFile(ctx, req); err != nil {
		return false, err
	}

	if manifest != nil {
		manifest.setAsset(manifestAsset{
			Source:   source,
			Output:   dest,
			Checksum: checksum,
			Size:     int64(len(data)),
			CopiedAt: buildCtx.GeneratedAt,
		})
	}
	return true, nil
}

func collectManifestAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, file := range selection.Manifest.Assets.Files {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
