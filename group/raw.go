package group

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/share"
	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrNoProxies means a subscription body held nothing we could turn into a profile.
var ErrNoProxies = errors.New("no proxies found")

// sip008 的 server 项, 单个 ss json 配置也是这个格式
type sip008Server struct {
	Server     string `json:"server"`
	ServerPort int32  `json:"server_port"`
	Password   string `json:"password"`
	Method     string `json:"method"`
	Plugin     string `json:"plugin"`
	PluginOpts string `json:"plugin_opts"`
	Remarks    string `json:"remarks"`
}

func (s sip008Server) bean() *bean.Shadowsocks {
	b := &bean.Shadowsocks{}
	b.ServerAddress = utils.Ptr(s.Server)
	b.ServerPort = utils.Ptr(s.ServerPort)
	b.Method = utils.Ptr(strings.ToLower(s.Method))
	b.Password = utils.Ptr(s.Password)
	b.Name = utils.Ptr(s.Remarks)

	plugin := s.Plugin
	if strings.HasPrefix(plugin, "simple-obfs") {
		plugin = "obfs-local" + strings.TrimPrefix(plugin, "simple-obfs")
	}
	if plugin != "" && s.PluginOpts != "" {
		plugin += ";" + s.PluginOpts
	}
	b.Plugin = utils.Ptr(plugin)
	bean.Materialize(b)
	return b
}

// ParseRaw turns a downloaded subscription body into profiles. The body may be a clash
// config, a SIP008 document, a single shadowsocks json config, or share links, optionally
// base64 encoded as a whole.
func ParseRaw(text string) ([]bean.Bean, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	if strings.Contains(text, "proxies") {
		if list, err := parseClash(text); err == nil && len(list) > 0 {
			return list, nil
		} else if err != nil {
			if ce := utils.CanLogDebug("not a clash config"); ce != nil {
				ce.Write(zap.Error(err))
			}
		}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		if list := parseJSON(trimmed); len(list) > 0 {
			return list, nil
		}
	}

	if decoded, ok := decodeBody(text); ok {
		if list := share.ParseLinks(decoded); len(list) > 0 {
			return list, nil
		}
	}
	if list := share.ParseLinks(text); len(list) > 0 {
		return list, nil
	}
	return nil, ErrNoProxies
}

func parseClash(text string) ([]bean.Bean, error) {
	var conf struct {
		Proxies []map[string]any `yaml:"proxies"`
	}
	if err := yaml.Unmarshal([]byte(text), &conf); err != nil {
		return nil, err
	}
	var list []bean.Bean
	for _, raw := range conf.Proxies {
		b := parseClashProxy(raw)
		if b == nil {
			if ce := utils.CanLogDebug("skip clash proxy"); ce != nil {
				ce.Write(zap.Any("name", raw["name"]), zap.Any("type", raw["type"]))
			}
			continue
		}
		bean.Materialize(b)
		list = append(list, b)
	}
	return list, nil
}

func parseJSON(text string) []bean.Bean {
	var doc struct {
		Servers []sip008Server `json:"servers"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err == nil && len(doc.Servers) > 0 {
		list := make([]bean.Bean, 0, len(doc.Servers))
		for _, s := range doc.Servers {
			list = append(list, s.bean())
		}
		return list
	}

	var single sip008Server
	if err := json.Unmarshal([]byte(text), &single); err == nil && single.Method != "" && single.Server != "" {
		return []bean.Bean{single.bean()}
	}
	return nil
}

// 整体 base64 的订阅, 各家的填充和字母表不统一, 依次尝试
func decodeBody(text string) (string, bool) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, text)
	if s == "" {
		return "", false
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if bs, err := enc.DecodeString(s); err == nil {
			return string(bs), true
		}
	}
	return "", false
}
