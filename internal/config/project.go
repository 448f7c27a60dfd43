package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigFiles は検索するファイル名の優先順
var ProjectConfigFiles = []string{
	".mdsummary.yaml",
	".mdsummary.yml",
}

// DefaultProjectConfigFile はデフォルトのプロジェクト設定ファイル名
const DefaultProjectConfigFile = ".mdsummary.yaml"

// findProjectConfigPath はカレントディレクトリから上に向かって
// .mdsummary.yaml を検索し、パスを返す
func findProjectConfigPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findUpward(dir, func(dir string) (string, bool) {
		for _, name := range ProjectConfigFiles {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}
		return "", false
	}), nil
}

// findGitRoot はカレントディレクトリから上に向かって
// .git を検索し、見つかったディレクトリを返す
func findGitRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findUpward(dir, func(dir string) (string, bool) {
		// worktree の場合 .git はファイル
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		return "", false
	}), nil
}

func findUpward(dir string, match func(dir string) (string, bool)) string {
	for {
		if found, ok := match(dir); ok {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// ルートに到達、見つからず
			return ""
		}
		dir = parent
	}
}

// GetProjectConfigPathForRoot は指定されたルートディレクトリのプロジェクト設定ファイルパスを返す
func GetProjectConfigPathForRoot(root string) string {
	for _, name := range ProjectConfigFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(root, DefaultProjectConfigFile)
}
