package cmdutil

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/config"
)

// GetConfigStore はConfigStoreを取得する
// グローバルフラグはrootCmd.PersistentPreRunEで適用済み
func GetConfigStore(cmd *cobra.Command) (*config.Store, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// ParseConfigValue は config set の文字列値を bool / int / string に変換する
func ParseConfigValue(value string) any {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	return value
}
