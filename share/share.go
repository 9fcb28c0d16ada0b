// Package share converts records to and from share links.
//
// Two families exist. The per-protocol URL formats (ss://, vmess://, hysteria2:// ...) are
// what other clients understand; they carry only part of a record. The universal link
// carries the binary share payload of any shareable kind, so nothing is lost.
package share

import (
	"errors"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedLink = errors.New("unsupported link")

	// 这是一个订阅而不是单个配置
	ErrSubscriptionLink = errors.New("link is a subscription")
)

func invalid(desc string, data any) error {
	return utils.ErrInErr{ErrDesc: desc, ErrDetail: utils.ErrInvalidData, Data: data}
}

func unsupported(desc string, data any) error {
	return utils.ErrInErr{ErrDesc: desc, ErrDetail: ErrUnsupportedLink, Data: data}
}

// Parse parses a single link of any supported scheme. The result is materialized.
func Parse(link string) (bean.Bean, error) {
	link = strings.TrimSpace(link)
	scheme, _, ok := strings.Cut(link, "://")
	if !ok {
		return nil, invalid("share.Parse, no scheme", link)
	}

	var b bean.Bean
	var err error

	switch strings.ToLower(scheme) {
	case UniversalScheme:
		if rest := link[len(scheme)+3:]; strings.HasPrefix(rest, "subscription") {
			return nil, utils.ErrInErr{ErrDesc: "share.Parse", ErrDetail: ErrSubscriptionLink, Data: link}
		}
		return ParseUniversalLink(link)
	case "socks", "socks4", "socks4a", "socks5", "socks5h", "socks+tls":
		b, err = parseSOCKS(link)
	case "http", "https":
		b, err = parseHTTP(link)
	case "ss":
		b, err = parseShadowsocks(link)
	case "vmess", "vless", "trojan":
		b, err = parseV2Ray(link)
	case "hysteria2", "hy2":
		b, err = parseHysteria2(link)
	case "tuic":
		b, err = parseTuic(link)
	case "juicity":
		b, err = parseJuicity(link)
	case "anytls":
		b, err = parseAnyTLS(link)
	default:
		return nil, unsupported("share.Parse", scheme)
	}
	if err != nil {
		return nil, err
	}
	bean.Materialize(b)
	return b, nil
}

// ParseLinks extracts every parsable link from text. Links may be separated by new lines
// or by spaces; whichever reading yields more records wins. Unparsable links are skipped.
func ParseLinks(text string) []bean.Bean {
	var byToken, byLine []bean.Bean

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		for _, tok := range strings.Split(strings.TrimSpace(line), " ") {
			byToken = parseInto(byToken, tok)
		}
	}
	for _, line := range lines {
		byLine = parseInto(byLine, strings.TrimSpace(line))
	}

	if len(byToken) > len(byLine) {
		return byToken
	}
	return byLine
}

func parseInto(list []bean.Bean, link string) []bean.Bean {
	if link == "" || !strings.Contains(link, "://") {
		return list
	}
	b, err := Parse(link)
	if err != nil {
		if ce := utils.CanLogDebug("skip link"); ce != nil {
			ce.Write(zap.String("link", link), zap.Error(err))
		}
		return list
	}
	return append(list, b)
}

// ToURI formats b in its protocol's own URL format. Kinds or settings the format can not
// express give an error wrapping ErrUnsupportedLink.
func ToURI(b bean.Bean) (string, error) {
	switch v := b.(type) {
	case *bean.SOCKS:
		return socksURI(v)
	case *bean.HTTP:
		return httpURI(v)
	case *bean.Shadowsocks:
		return shadowsocksURI(v)
	case *bean.VMess:
		return v2rayURI(v, &v.StandardV2Ray)
	case *bean.VLESS:
		return v2rayURI(v, &v.StandardV2Ray)
	case *bean.Trojan:
		return v2rayURI(v, &v.StandardV2Ray)
	case *bean.Hysteria2:
		return hysteria2URI(v)
	case *bean.Tuic5:
		return tuicURI(v)
	case *bean.Juicity:
		return juicityURI(v)
	case *bean.AnyTLS:
		return anyTLSURI(v)
	}
	return "", unsupported("share.ToURI", b.Kind().String())
}

// Export gives the protocol URL when b fits in it, otherwise the universal link.
func Export(b bean.Bean) (string, error) {
	if s, err := ToURI(b); err == nil {
		return s, nil
	}
	return ToUniversalLink(b)
}
