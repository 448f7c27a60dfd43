package cmdutil

import (
	"io"
	"os"

	"github.com/go-faster/errors"
)

// StdinSource は標準入力を表すソース名
const StdinSource = "-"

// ErrInputNotFound は入力ファイルが存在しないことを表す
var ErrInputNotFound = errors.New("input not found")

// Input は要約対象の1文書
type Input struct {
	Source  string
	Content string
}

// ReadInputs は paths を順に読み込む。空なら stdin を1件として読む。
// "-" は stdin を表す。
func ReadInputs(paths []string, stdin io.Reader) ([]Input, error) {
	if len(paths) == 0 {
		paths = []string{StdinSource}
	}

	inputs := make([]Input, 0, len(paths))
	stdinRead := false
	for _, path := range paths {
		if path == StdinSource {
			if stdinRead {
				return nil, errors.New("stdin can only be read once")
			}
			stdinRead = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, errors.Wrap(err, "read stdin")
			}
			inputs = append(inputs, Input{Source: StdinSource, Content: string(data)})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(ErrInputNotFound, "%s", path)
			}
			return nil, errors.Wrapf(err, "read %s", path)
		}
		inputs = append(inputs, Input{Source: path, Content: string(data)})
	}
	return inputs, nil
}
