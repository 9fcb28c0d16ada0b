package share

import (
	"net/url"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

func parseJuicity(link string) (bean.Bean, error) {
	u, err := parseURL(link)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	b := &bean.Juicity{}
	if err = setEndpoint(&b.Base, u, 443); err != nil {
		return nil, err
	}
	uuid, pass, _ := userPass(u)
	b.UUID = utils.Ptr(uuidOf(uuid))
	b.Password = utils.Ptr(pass)
	b.SNI = utils.Ptr(q.Get("sni"))
	b.AllowInsecure = utils.Ptr(anyPositive(q, "allow_insecure", "insecure"))

	// 固定了证书链就不再走系统证书校验
	if chain := q.Get("pinned_certchain_sha256"); chain != "" {
		b.PinnedPeerCertificateChainSha256 = utils.Ptr(chain)
		b.AllowInsecure = utils.Ptr(true)
	}
	return b, nil
}

func juicityURI(b *bean.Juicity) (string, error) {
	u, err := newURL("juicity", &b.Base)
	if err != nil {
		return "", err
	}
	u.User = url.UserPassword(utils.Val(b.UUID), utils.Val(b.Password))

	q := url.Values{}
	setNonEmpty(q, "sni", utils.Val(b.SNI))
	chain := utils.Val(b.PinnedPeerCertificateChainSha256)
	if chain != "" {
		q.Set("pinned_certchain_sha256", chain)
	} else if utils.Val(b.AllowInsecure) {
		q.Set("allow_insecure", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
