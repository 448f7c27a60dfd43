package history

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Entry は1回の要約実行の記録
// summarize コマンドの JSON/YAML 出力と履歴ファイルの1行を兼ねる
type Entry struct {
	TS           time.Time `yaml:"ts"`
	Source       string    `yaml:"source"`
	Algorithm    string    `yaml:"algorithm"`
	Method       string    `yaml:"method"`
	Reason       string    `yaml:"reason,omitempty"`
	InputHash    string    `yaml:"input_hash"`
	InputRunes   int       `yaml:"input_runes"`
	InputExcerpt string    `yaml:"input_excerpt,omitempty"`
	Sentences    int       `yaml:"sentences"`
	Selected     []int     `yaml:"selected,omitempty"`
	Iterations   int       `yaml:"iterations"`
	Converged    bool      `yaml:"converged"`
	Cached       bool      `yaml:"cached"`
	DurationMS   int64     `yaml:"duration_ms"`
	Summary      string    `yaml:"summary"`
	OutputRunes  int       `yaml:"output_runes"`
}

// Encode は Entry を JSON オブジェクトとして書き出す
func (en *Entry) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("ts")
	e.Str(en.TS.Format(time.RFC3339Nano))
	e.FieldStart("source")
	e.Str(en.Source)
	e.FieldStart("algorithm")
	e.Str(en.Algorithm)
	e.FieldStart("method")
	e.Str(en.Method)
	if en.Reason != "" {
		e.FieldStart("reason")
		e.Str(en.Reason)
	}
	e.FieldStart("input_hash")
	e.Str(en.InputHash)
	e.FieldStart("input_runes")
	e.Int(en.InputRunes)
	if en.InputExcerpt != "" {
		e.FieldStart("input_excerpt")
		e.Str(en.InputExcerpt)
	}
	e.FieldStart("sentences")
	e.Int(en.Sentences)
	if len(en.Selected) > 0 {
		e.FieldStart("selected")
		e.ArrStart()
		for _, idx := range en.Selected {
			e.Int(idx)
		}
		e.ArrEnd()
	}
	e.FieldStart("iterations")
	e.Int(en.Iterations)
	e.FieldStart("converged")
	e.Bool(en.Converged)
	e.FieldStart("cached")
	e.Bool(en.Cached)
	e.FieldStart("duration_ms")
	e.Int64(en.DurationMS)
	e.FieldStart("summary")
	e.Str(en.Summary)
	e.FieldStart("output_runes")
	e.Int(en.OutputRunes)
	e.ObjEnd()
}

// Decode は JSON オブジェクトから Entry を読み込む。未知のフィールドは無視する。
func (en *Entry) Decode(d *jx.Decoder) error {
	if en == nil {
		return errors.New("invalid: unable to decode Entry to nil")
	}
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ts":
			var s string
			if s, err = d.Str(); err == nil {
				en.TS, err = time.Parse(time.RFC3339Nano, s)
			}
		case "source":
			en.Source, err = d.Str()
		case "algorithm":
			en.Algorithm, err = d.Str()
		case "method":
			en.Method, err = d.Str()
		case "reason":
			en.Reason, err = d.Str()
		case "input_hash":
			en.InputHash, err = d.Str()
		case "input_runes":
			en.InputRunes, err = d.Int()
		case "input_excerpt":
			en.InputExcerpt, err = d.Str()
		case "sentences":
			en.Sentences, err = d.Int()
		case "selected":
			en.Selected = en.Selected[:0]
			err = d.Arr(func(d *jx.Decoder) error {
				idx, err := d.Int()
				if err != nil {
					return err
				}
				en.Selected = append(en.Selected, idx)
				return nil
			})
		case "iterations":
			en.Iterations, err = d.Int()
		case "converged":
			en.Converged, err = d.Bool()
		case "cached":
			en.Cached, err = d.Bool()
		case "duration_ms":
			en.DurationMS, err = d.Int64()
		case "summary":
			en.Summary, err = d.Str()
		case "output_runes":
			en.OutputRunes, err = d.Int()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "decode field %q", key)
		}
		return nil
	})
}

// MarshalJSON implements json.Marshaler.
func (en Entry) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	en.Encode(&e)
	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (en *Entry) UnmarshalJSON(data []byte) error {
	return en.Decode(jx.DecodeBytes(data))
}

// EncodeEntries は Entry の配列を JSON 配列として返す
func EncodeEntries(entries []Entry) []byte {
	var e jx.Encoder
	e.ArrStart()
	for i := range entries {
		entries[i].Encode(&e)
	}
	e.ArrEnd()
	return e.Bytes()
}
