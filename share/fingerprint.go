package share

import (
	"strings"

	"github.com/e1732a364fed/vs_profile/utils"
	utls "github.com/refraction-networking/utls"
)

// 链接里 fp 参数可用的值
var fingerprints = map[string]utls.ClientHelloID{
	"chrome":  utls.HelloChrome_Auto,
	"firefox": utls.HelloFirefox_Auto,
	"ios":     utls.HelloIOS_Auto,
	"safari":  utls.HelloSafari_Auto,
	"golang":  utls.HelloGolang,
	"android": utls.HelloAndroid_11_OkHttp,
	"360":     utls.Hello360_Auto,
	"edge":    utls.HelloEdge_Auto,
	"random":  utls.HelloRandomized,
}

// Fingerprint looks up the client hello a fingerprint name stands for.
func Fingerprint(name string) (utls.ClientHelloID, bool) {
	id, ok := fingerprints[strings.ToLower(name)]
	return id, ok
}

func FingerprintNames() []string {
	return utils.GetMapSortedKeySlice(fingerprints)
}

// 未知的指纹名直接丢弃, 让记录退回默认值
func normalizeFingerprint(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := fingerprints[name]; ok {
		return name
	}
	return ""
}
