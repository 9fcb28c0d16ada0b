package share

import (
	"net/url"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

func parseHTTP(link string) (bean.Bean, error) {
	u, err := parseURL(link)
	if err != nil {
		return nil, err
	}
	if u.Path != "" && u.Path != "/" {
		return nil, unsupported("http link with path", u.Path)
	}

	isTLS := strings.EqualFold(u.Scheme, "https")
	def := int32(80)
	if isTLS {
		def = 443
	}

	b := &bean.HTTP{}
	if err = setEndpoint(&b.Base, u, def); err != nil {
		return nil, err
	}
	user, pass, _ := userPass(u)
	b.Username = utils.Ptr(user)
	b.Password = utils.Ptr(pass)

	if isTLS {
		b.Security = utils.Ptr("tls")
		b.SNI = utils.Ptr(u.Query().Get("sni"))
	}
	return b, nil
}

func httpURI(b *bean.HTTP) (string, error) {
	v := &b.StandardV2Ray
	if !plainTCP(v) {
		return "", unsupported("http link, transport", utils.Val(v.Type))
	}

	scheme := "http"
	switch s := utils.Val(v.Security); s {
	case "", "none":
	case "tls":
		scheme = "https"
	default:
		return "", unsupported("http link, security", s)
	}

	u, err := newURL(scheme, &b.Base)
	if err != nil {
		return "", err
	}
	setUser(u, utils.Val(b.Username), utils.Val(b.Password))

	if sni := utils.Val(v.SNI); scheme == "https" && sni != "" && sni != utils.Val(b.ServerAddress) {
		u.RawQuery = url.Values{"sni": {sni}}.Encode()
	}
	return u.String(), nil
}
