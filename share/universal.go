package share

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/klauspost/compress/zlib"
)

const UniversalScheme = "exclave"

// 解压后的 share 编码上限
const maxUniversalPayload = 1 << 20

// ToUniversalLink gives exclave://<kind>?<payload>, payload being the zlib compressed share
// encoding in unpadded url-safe base64.
func ToUniversalLink(b bean.Bean) (string, error) {
	data, err := bean.EncodeShare(b)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err = w.Write(data); err != nil {
		return "", err
	}
	if err = w.Close(); err != nil {
		return "", err
	}

	return UniversalScheme + "://" + b.Kind().String() + "?" + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

func ParseUniversalLink(link string) (bean.Bean, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(link), "://")
	if !ok || !strings.EqualFold(scheme, UniversalScheme) {
		return nil, invalid("not a universal link", link)
	}
	kindName, payload, ok := strings.Cut(rest, "?")
	if !ok {
		return nil, invalid("universal link without payload", link)
	}
	k, ok := bean.KindByName(kindName)
	if !ok {
		return nil, unsupported("universal link kind", kindName)
	}
	payload, _, _ = strings.Cut(payload, "#")

	compressed, err := decodeBase64(payload)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "universal link payload", ErrDetail: err, Data: kindName}
	}
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "universal link payload", ErrDetail: err, Data: kindName}
	}
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxUniversalPayload+1))
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "universal link payload", ErrDetail: err, Data: kindName}
	}
	if len(data) > maxUniversalPayload {
		return nil, invalid("universal link payload too large", kindName)
	}

	b, err := bean.DecodeShare(data)
	if err != nil {
		return nil, err
	}
	if b.Kind() != k {
		return nil, invalid("universal link kind mismatch", kindName)
	}
	return b, nil
}
