package share

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

/*
	ss://base64(method:password@host:port)#name             SIP002 之前
	ss://base64url(method:password)@host:port/?plugin=x#name SIP002
	ss://method:password@host:port#name                      SIP002, 2022 系列
*/
func parseShadowsocks(link string) (bean.Bean, error) {
	_, body, _ := strings.Cut(link, "://")
	body, frag, _ := strings.Cut(body, "#")

	b := &bean.Shadowsocks{}

	if !strings.Contains(body, "@") {
		payload, _, _ := strings.Cut(body, "?")
		decoded, err := decodeBase64(strings.TrimSuffix(payload, "/"))
		if err != nil {
			return nil, invalid("ss link, bad base64", payload)
		}
		s := string(decoded)
		at := strings.LastIndex(s, "@")
		if at < 0 {
			return nil, invalid("ss link, no server", s)
		}
		method, pass, ok := strings.Cut(s[:at], ":")
		if !ok {
			return nil, invalid("ss link, no password", s)
		}
		u, err := parseURL("ss://" + s[at+1:])
		if err != nil {
			return nil, err
		}
		if err = setEndpoint(&b.Base, u, 8388); err != nil {
			return nil, err
		}
		if name, err := url.PathUnescape(frag); err == nil {
			b.Name = utils.Ptr(name)
		} else {
			b.Name = utils.Ptr(frag)
		}
		b.Method = utils.Ptr(method)
		b.Password = utils.Ptr(pass)
	} else {
		u, err := parseURL(link)
		if err != nil {
			return nil, err
		}
		if err = setEndpoint(&b.Base, u, 8388); err != nil {
			return nil, err
		}

		user, pass, hasPass := userPass(u)
		if !hasPass {
			decoded, err := decodeBase64(user)
			if err != nil {
				return nil, invalid("ss link, bad userinfo", user)
			}
			var ok bool
			user, pass, ok = strings.Cut(string(decoded), ":")
			if !ok {
				return nil, invalid("ss link, no password", string(decoded))
			}
		}
		b.Method = utils.Ptr(user)
		b.Password = utils.Ptr(pass)

		if plugin := u.Query().Get("plugin"); plugin != "" {
			// simple-obfs 是 obfs-local 的旧名字
			if strings.HasPrefix(plugin, "simple-obfs") {
				plugin = "obfs-local" + strings.TrimPrefix(plugin, "simple-obfs")
			}
			b.Plugin = utils.Ptr(plugin)
		}
	}

	method := strings.ToLower(utils.Val(b.Method))
	if method == "plain" {
		method = "none"
	}
	b.Method = utils.Ptr(method)
	return b, nil
}

func shadowsocksURI(b *bean.Shadowsocks) (string, error) {
	v := &b.StandardV2Ray
	if !plainTCP(v) {
		return "", unsupported("ss link, transport", utils.Val(v.Type))
	}
	if s := utils.Val(v.Security); s != "" && s != "none" {
		return "", unsupported("ss link, security", s)
	}

	u, err := newURL("ss", &b.Base)
	if err != nil {
		return "", err
	}
	method, pass := utils.Val(b.Method), utils.Val(b.Password)
	if strings.HasPrefix(method, "2022-blake3-") {
		u.User = url.UserPassword(method, pass)
	} else {
		u.User = url.User(base64.RawURLEncoding.EncodeToString([]byte(method + ":" + pass)))
	}

	if plugin := utils.Val(b.Plugin); plugin != "" {
		u.Path = "/"
		u.RawQuery = url.Values{"plugin": {plugin}}.Encode()
	}
	return u.String(), nil
}
