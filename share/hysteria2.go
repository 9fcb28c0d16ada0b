package share

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

// hysteria2://auth@host:443,1000-2000/?sni=x&obfs=salamander&obfs-password=y#name
//
// 端口部分可以是多端口, url.Parse 不认, 所以先把它摘出来
func parseHysteria2(link string) (bean.Bean, error) {
	scheme, rest, _ := strings.Cut(link, "://")
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority, tail := rest[:end], rest[end:]

	userinfo := ""
	hostport := authority
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		userinfo, hostport = authority[:at+1], authority[at+1:]
	}

	host, ports := hostport, ""
	if strings.HasPrefix(hostport, "[") {
		if i := strings.Index(hostport, "]"); i > 0 {
			host = hostport[:i+1]
			ports = strings.TrimPrefix(hostport[i+1:], ":")
		}
	} else if i := strings.LastIndex(hostport, ":"); i >= 0 {
		host, ports = hostport[:i], hostport[i+1:]
	}

	u, err := parseURL(scheme + "://" + userinfo + host + tail)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if mport := q.Get("mport"); mport != "" {
		ports = mport
	}
	if ports == "" {
		ports = "443"
	}
	if !bean.IsValidHysteriaPort(ports) {
		return nil, invalid("hysteria2 link, bad port", ports)
	}

	b := &bean.Hysteria2{}
	if err = setEndpoint(&b.Base, u, 443); err != nil {
		return nil, err
	}
	b.ServerPorts = utils.Ptr(ports)
	if p, err := strconv.Atoi(ports); err == nil {
		b.ServerPort = utils.Ptr(int32(p))
	}

	user, pass, hasPass := userPass(u)
	if hasPass {
		user += ":" + pass
	}
	b.Auth = utils.Ptr(user)

	b.SNI = utils.Ptr(q.Get("sni"))
	b.AllowInsecure = utils.Ptr(anyPositive(q, "insecure", "allowInsecure"))
	if pin := q.Get("pinSHA256"); pin != "" {
		pin = strings.ToLower(strings.NewReplacer(":", "", "-", "").Replace(pin))
		b.PinnedPeerCertificateSha256 = utils.Ptr(pin)
	}

	switch obfs := q.Get("obfs"); obfs {
	case "", "none":
	case "salamander":
		b.Obfs = utils.Ptr(q.Get("obfs-password"))
	default:
		return nil, unsupported("hysteria2 link, obfs", obfs)
	}
	return b, nil
}

func hysteria2URI(b *bean.Hysteria2) (string, error) {
	addr := utils.Val(b.ServerAddress)
	if addr == "" {
		return "", invalid("empty server address", "hysteria2")
	}
	ports := utils.Val(b.ServerPorts)
	if ports == "" {
		ports = strconv.Itoa(int(utils.Val(b.ServerPort)))
	}

	// 逗号和减号在 host 里不会被转义, 多端口可以直接放进去
	u := &url.URL{
		Scheme:   "hysteria2",
		Host:     net.JoinHostPort(addr, ports),
		Path:     "/",
		Fragment: utils.Val(b.Name),
	}
	if auth := utils.Val(b.Auth); auth != "" {
		u.User = url.User(auth)
	}

	q := url.Values{}
	setNonEmpty(q, "sni", utils.Val(b.SNI))
	if utils.Val(b.AllowInsecure) {
		q.Set("insecure", "1")
	}
	setNonEmpty(q, "pinSHA256", utils.Val(b.PinnedPeerCertificateSha256))
	if obfs := utils.Val(b.Obfs); obfs != "" {
		q.Set("obfs", "salamander")
		q.Set("obfs-password", obfs)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
