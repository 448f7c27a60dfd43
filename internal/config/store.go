package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/yacchi/jubako"
	"github.com/yacchi/jubako/format/yaml"
	"github.com/yacchi/jubako/layer"
	"github.com/yacchi/jubako/layer/env"
	"github.com/yacchi/jubako/layer/mapdata"
	"github.com/yacchi/jubako/source/bytes"
	"github.com/yacchi/jubako/source/fs"
)

// EnvPrefix は環境変数レイヤーのプレフィックス
const EnvPrefix = "MDSUMMARY_"

// Store は設定のレイヤー管理を行うjubakoベースの実装
type Store struct {
	mu sync.RWMutex

	store *jubako.Store[ResolvedConfig]

	// プロジェクト設定ファイルのパス
	projectConfigPath string
}

// newConfigStore は新しいConfigStoreを作成する
// すべてのレイヤーを静的に追加する。ファイルが存在しない場合は空として扱う。
func newConfigStore() (*Store, error) {
	store := jubako.New[ResolvedConfig]()

	// Layer 1: Defaults (embedded YAML)
	if err := store.Add(
		layer.New(
			LayerDefaults,
			bytes.FromString(string(defaultConfigYAML)),
			yaml.New(),
		),
		jubako.WithReadOnly(),
		jubako.WithNoWatch(),
	); err != nil {
		return nil, errors.Wrap(err, "add defaults layer")
	}

	// Layer 2: User config (~/.config/mdsummary/config.yaml)
	userConfigPath, err := configPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve user config path")
	}
	if err := store.Add(
		layer.New(
			LayerUser,
			fs.New(userConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
	); err != nil {
		return nil, errors.Wrap(err, "add user layer")
	}

	// Layer 3: Project config (.mdsummary.yaml)
	// 見つかったらそのパス、なければカレントディレクトリの .mdsummary.yaml をデフォルト
	projectConfigPath, _ := findProjectConfigPath()
	if projectConfigPath == "" {
		projectConfigPath = DefaultProjectConfigFile
	}
	if err := store.Add(
		layer.New(
			LayerProject,
			fs.New(projectConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
	); err != nil {
		return nil, errors.Wrap(err, "add project layer")
	}

	// Layer 4: Environment variables (MDSUMMARY_*)
	if err := store.Add(
		env.NewWithAutoSchema(LayerEnv, EnvPrefix),
		jubako.WithReadOnly(),
	); err != nil {
		return nil, errors.Wrap(err, "add env layer")
	}

	// Layer 5: Command-line flags
	// 静的に空のレイヤーを追加。SetFlagsLayer で値を設定
	if err := store.Add(
		mapdata.New(LayerArgs, nil),
	); err != nil {
		return nil, errors.Wrap(err, "add args layer")
	}

	return &Store{
		store:             store,
		projectConfigPath: projectConfigPath,
	}, nil
}

// LoadAll は全レイヤーを読み込んでConfigを構築する
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(ctx); err != nil {
		return errors.Wrap(err, "load config")
	}
	resolved := s.store.Get()
	return resolved.Validate()
}

// SetFlagsLayer はコマンドラインフラグからのオーバーライドを設定する
func (s *Store) SetFlagsLayer(options []jubako.SetOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(LayerArgs, options...); err != nil {
		return errors.Wrap(err, "apply flags")
	}
	resolved := s.store.Get()
	return resolved.Validate()
}

// Reload は設定を再読み込みする
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Reload(ctx)
}

// ====================
// アクセサ（読み取り）
// ====================

// Resolved は解決済み設定を返す
func (s *Store) Resolved() *ResolvedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved
}

// Summary は要約設定を取得する
func (s *Store) Summary() *ResolvedSummary {
	return &s.Resolved().Summary
}

// Output は出力設定を取得する
func (s *Store) Output() *ResolvedOutput {
	return &s.Resolved().Output
}

// Cache はキャッシュ設定を取得する
func (s *Store) Cache() *ResolvedCache {
	return &s.Resolved().Cache
}

// History は履歴設定を取得する
func (s *Store) History() *ResolvedHistory {
	return &s.Resolved().History
}

// GetProjectConfigPath はプロジェクト設定ファイルのパスを返す
func (s *Store) GetProjectConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectConfigPath
}

// GetUserConfigPath はユーザー設定ファイルのパスを返す
func (s *Store) GetUserConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if info := s.store.GetLayerInfo(LayerUser); info != nil {
		return info.Path()
	}
	return ""
}

// GetProjectRoot はプロジェクトルートディレクトリを返す
// プロジェクト設定ファイルが見つかっていればそのディレクトリ、なければ .git を検索する
func (s *Store) GetProjectRoot() (string, error) {
	s.mu.RLock()
	projectPath := s.projectConfigPath
	s.mu.RUnlock()

	if projectPath != "" && filepath.IsAbs(projectPath) {
		return filepath.Dir(projectPath), nil
	}
	return findGitRoot()
}

// ====================
// CLIコマンド用メソッド
// ====================

// Get は指定キーの値を取得する
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rv := s.store.GetAt(DotToPointer(key))
	if rv.Exists {
		return rv.Value
	}
	return nil
}

// Has はキーがいずれかのレイヤーに存在するかを返す
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.GetAt(DotToPointer(key)).Exists
}

// WalkEntry は Walk で返されるエントリ情報
type WalkEntry struct {
	Path         string // ドット区切りのパス
	Value        any
	Layer        string // 値の出所となるレイヤー名
	DefaultValue any    // デフォルト値（存在しない場合は nil）
}

// WalkFunc は Walk で使用するコールバック関数の型
// fn が false を返すとイテレーションを停止する
type WalkFunc func(entry WalkEntry) bool

// Walk は全設定パスをイテレートする
func (s *Store) Walk(fn WalkFunc) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.store.Walk(func(ctx jubako.WalkContext) bool {
		rv := ctx.Value()
		if !rv.Exists {
			return true
		}
		// /summary/max_length → summary.max_length
		key := strings.ReplaceAll(ctx.Path[1:], "/", ".")
		layerName := ""
		if rv.Layer != nil {
			layerName = string(rv.Layer.Name())
		}

		var defaultValue any
		for _, v := range ctx.AllValues() {
			if v.Layer != nil && string(v.Layer.Name()) == LayerDefaults {
				defaultValue = v.Value
				break
			}
		}

		return fn(WalkEntry{
			Path:         key,
			Value:        rv.Value,
			Layer:        layerName,
			DefaultValue: defaultValue,
		})
	})
}

// SetToLayer は指定レイヤーに値を設定する
func (s *Store) SetToLayer(layerName, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetTo(layer.Name(layerName), DotToPointer(key), value); err != nil {
		return errors.Wrapf(err, "set %s in %s layer", key, layerName)
	}
	return nil
}

// Save は更新があったレイヤーを保存する
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info := s.store.GetLayerInfo(LayerUser); info != nil && info.Path() != "" {
		if err := os.MkdirAll(filepath.Dir(info.Path()), 0o755); err != nil {
			return errors.Wrap(err, "create config directory")
		}
	}
	if err := s.store.Save(ctx); err != nil {
		return errors.Wrap(err, "save config")
	}
	return nil
}

// ====================
// グローバルストア管理
// ====================

var (
	globalStore   *Store
	globalStoreMu sync.RWMutex
)

// Load はグローバル設定ストアを初期化してロードする
// すでにロード済みの場合は既存のストアを返す
func Load(ctx context.Context) (*Store, error) {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()

	if globalStore != nil {
		return globalStore, nil
	}

	store, err := newConfigStore()
	if err != nil {
		return nil, err
	}
	if err := store.LoadAll(ctx); err != nil {
		return nil, err
	}

	globalStore = store
	return globalStore, nil
}

// ResetConfig はグローバル設定ストアをリセットする（テスト用）
func ResetConfig() {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()
	globalStore = nil
}
