// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers so every package names its log fields the same
// way.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithAttr(logger.Component("shape")),
//	)
//	log.Debug("recursive schema resolved", logger.Node("Tree"), logger.Kind("object"))
//
// # Formats
//
// FormatJSON (the default) suits log aggregation; FormatText is easier to
// read while developing. Format implements encoding.TextUnmarshaler, so it
// can be read straight from configuration and rejects unknown values there.
//
// # Error Handling
//
// Error produces an attribute only for a non-nil error, which allows
//
//	log.Warn("unmergeable intersection", logger.Error(err))
//
// without a nil check at the call site.
package logger
