// Package cache は要約結果をファイルに保存するキャッシュ
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Cache はキャッシュインターフェース
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte, ttl time.Duration) error
	Clear() error
}

// FileCache はファイルベースのキャッシュ実装
// 1キー1ファイルで、{"expires_at": ..., "data": ...} のエンベロープに包んで保存する
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache は新しいFileCacheを作成する
// dirが空の場合はユーザーのキャッシュディレクトリを使用する
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, errors.Wrap(err, "get user cache dir")
		}
		dir = filepath.Join(userCacheDir, "mdsummary")
	}
	dir = filepath.Join(dir, "summaries")

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create cache dir")
	}

	return &FileCache{dir: dir, now: time.Now}, nil
}

// Key は入力本文と要約パラメータからキャッシュキーを作る
func Key(content string, params ...string) string {
	h := sha256.New()
	for _, p := range params {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *FileCache) getFilePath(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

// Get はキャッシュを取得する
// 存在しない、期限切れ、壊れている場合は false と nil を返す
func (c *FileCache) Get(key string) ([]byte, bool, error) {
	path := c.getFilePath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read cache file")
	}

	var (
		expiresAt time.Time
		data      []byte
	)
	d := jx.DecodeBytes(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "expires_at":
			s, err := d.Str()
			if err != nil {
				return err
			}
			expiresAt, err = time.Parse(time.RFC3339Nano, s)
			return err
		case "data":
			r, err := d.Raw()
			if err != nil {
				return err
			}
			data = append([]byte(nil), r...)
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		// デコードエラーならキャッシュ無効扱い
		return nil, false, nil
	}

	if !c.now().Before(expiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set はキャッシュを保存する。data は JSON でなければならない。
func (c *FileCache) Set(key string, data []byte, ttl time.Duration) error {
	if !jx.Valid(data) {
		return errors.New("cache data is not valid JSON")
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("expires_at")
	e.Str(c.now().Add(ttl).Format(time.RFC3339Nano))
	e.FieldStart("data")
	e.Raw(data)
	e.ObjEnd()

	// 書き込み途中のファイルを読まないよう rename で置き換える
	f, err := os.CreateTemp(c.dir, "*.tmp")
	if err != nil {
		return errors.Wrap(err, "create cache file")
	}
	tmp := f.Name()
	if _, err := f.Write(e.Bytes()); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "write cache file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "close cache file")
	}
	if err := os.Rename(tmp, c.getFilePath(key)); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "replace cache file")
	}
	return nil
}

// Clear はキャッシュディレクトリを削除する
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}
