package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

func loggerOrGlobal(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.L()
	}
	return logger
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
