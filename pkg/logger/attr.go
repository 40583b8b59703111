package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting package under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Node records a validator display name under the key "node".
func Node(name string) slog.Attr {
	return slog.String("node", name)
}

// Kind records a validator variant under the key "kind".
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Mode records the validation mode under the key "mode".
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}
