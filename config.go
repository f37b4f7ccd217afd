package codelab

import "github.com/goliatone/go-codelab/internal/runtimeconfig"

var (
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrThemeDirRequired       = runtimeconfig.ErrThemeDirRequired
	ErrWorkersInvalid         = runtimeconfig.ErrWorkersInvalid
	ErrPreviewPortInvalid     = runtimeconfig.ErrPreviewPortInvalid
	ErrPreviewDebounceInvalid = runtimeconfig.ErrPreviewDebounceInvalid
	ErrTitleLengthInvalid     = runtimeconfig.ErrTitleLengthInvalid
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	SiteConfig    = runtimeconfig.SiteConfig
	ContentConfig = runtimeconfig.ContentConfig
	AssetsConfig  = runtimeconfig.AssetsConfig
	BuildConfig   = runtimeconfig.BuildConfig
	ThemeConfig   = runtimeconfig.ThemeConfig
	LintConfig    = runtimeconfig.LintConfig
	PreviewConfig = runtimeconfig.PreviewConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	FeatureConfig = runtimeconfig.FeatureConfig
)

// DefaultConfig returns a configuration with every module enabled and
// defaults applied.
func DefaultConfig() Config {
	return runtimeconfig.New()
}
