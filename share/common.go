package share

import (
	"encoding/base64"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
	"golang.org/x/net/idna"
)

func parseURL(link string) (*url.URL, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "Can't parse share link", ErrDetail: err, Data: link}
	}
	return u, nil
}

func checkHost(host string) error {
	if host == "" {
		return invalid("empty server address", host)
	}
	ascii, err := idna.ToASCII(host)
	if err != nil {
		ascii = host
	}
	if !govalidator.IsHost(ascii) {
		return invalid("invalid server address", host)
	}
	return nil
}

// 端口缺省或为0时用 def
func hostPort(u *url.URL, def int32) (string, int32, error) {
	host := u.Hostname()
	if err := checkHost(host); err != nil {
		return "", 0, err
	}
	ps := u.Port()
	if ps == "" {
		return host, def, nil
	}
	p, err := strconv.Atoi(ps)
	if err != nil || p < 0 || p > 65535 {
		return "", 0, invalid("invalid port", ps)
	}
	if p == 0 {
		p = int(def)
	}
	return host, int32(p), nil
}

func setEndpoint(b *bean.Base, u *url.URL, def int32) error {
	host, port, err := hostPort(u, def)
	if err != nil {
		return err
	}
	b.ServerAddress = utils.Ptr(host)
	b.ServerPort = utils.Ptr(port)
	b.Name = utils.Ptr(u.Fragment)
	return nil
}

func userPass(u *url.URL) (user, pass string, hasPass bool) {
	if u.User == nil {
		return
	}
	user = u.User.Username()
	pass, hasPass = u.User.Password()
	return
}

// 各种客户端导出的 base64 都有, 标准的, url安全的, 有无补齐的
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "-", "/", "_", "+", "-", "=", "").Replace(s)
	return base64.RawURLEncoding.DecodeString(s)
}

func newURL(scheme string, b *bean.Base) (*url.URL, error) {
	addr := utils.Val(b.ServerAddress)
	if addr == "" {
		return nil, invalid("empty server address", scheme)
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     net.JoinHostPort(addr, strconv.Itoa(int(utils.Val(b.ServerPort)))),
		Fragment: utils.Val(b.Name),
	}, nil
}

func setUser(u *url.URL, user, pass string) {
	switch {
	case user != "" && pass != "":
		u.User = url.UserPassword(user, pass)
	case user != "":
		u.User = url.User(user)
	}
}

// 链接里用逗号, 记录里用换行
func commaToLines(s string) string {
	return strings.Join(strings.Split(s, ","), "\n")
}

func linesToComma(s string) string {
	var list []string
	for _, l := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' }) {
		if l = strings.TrimSpace(l); l != "" {
			list = append(list, l)
		}
	}
	return strings.Join(list, ",")
}

// 依次尝试几个同义的参数名
func firstQuery(q url.Values, keys ...string) (string, bool) {
	for _, k := range keys {
		if q.Has(k) {
			return q.Get(k), true
		}
	}
	return "", false
}

func anyPositive(q url.Values, keys ...string) bool {
	for _, k := range keys {
		if utils.QueryPositive(q, k) {
			return true
		}
	}
	return false
}
