package share

import (
	"net/url"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

func parseAnyTLS(link string) (bean.Bean, error) {
	u, err := parseURL(link)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	if s := strings.ToLower(q.Get("security")); s != "" && s != "tls" {
		return nil, unsupported("anytls link, security", s)
	}

	b := &bean.AnyTLS{}
	if err = setEndpoint(&b.Base, u, 443); err != nil {
		return nil, err
	}
	user, pass, hasPass := userPass(u)
	if hasPass {
		user += ":" + pass
	}
	b.Password = utils.Ptr(user)
	b.Security = utils.Ptr("tls")
	b.SNI = utils.Ptr(q.Get("sni"))
	b.AllowInsecure = utils.Ptr(anyPositive(q, "insecure", "allowInsecure"))
	if fp := normalizeFingerprint(q.Get("fp")); fp != "" {
		b.UtlsFingerprint = utils.Ptr(fp)
	}
	return b, nil
}

func anyTLSURI(b *bean.AnyTLS) (string, error) {
	if s := utils.Val(b.Security); s != "tls" {
		return "", unsupported("anytls link, security", s)
	}
	u, err := newURL("anytls", &b.Base)
	if err != nil {
		return "", err
	}
	u.Path = "/"
	if pass := utils.Val(b.Password); pass != "" {
		u.User = url.User(pass)
	}

	q := url.Values{}
	setNonEmpty(q, "sni", utils.Val(b.SNI))
	if utils.Val(b.AllowInsecure) {
		q.Set("insecure", "1")
	}
	setNonEmpty(q, "fp", utils.Val(b.UtlsFingerprint))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
