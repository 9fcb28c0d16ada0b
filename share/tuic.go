package share

import (
	"net/url"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

func parseTuic(link string) (bean.Bean, error) {
	u, err := parseURL(link)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	uuid, pass, hasPass := userPass(u)
	// v2rayN 会把冒号转义成 %3A
	if !hasPass {
		uuid, pass, hasPass = strings.Cut(uuid, ":")
	}
	if version := q.Get("version"); version == "4" || (!hasPass && version != "5") {
		return nil, unsupported("tuic v4 link", link)
	}

	b := &bean.Tuic5{}
	if err = setEndpoint(&b.Base, u, 443); err != nil {
		return nil, err
	}
	b.UUID = utils.Ptr(uuidOf(uuid))
	b.Password = utils.Ptr(pass)

	b.SNI = utils.Ptr(q.Get("sni"))
	if alpn := q.Get("alpn"); alpn != "" {
		b.ALPN = utils.Ptr(commaToLines(alpn))
	}
	if cc, ok := firstQuery(q, "congestion_control", "congestion_controller", "congestion"); ok && cc != "" {
		if cc == "new-reno" {
			cc = "new_reno"
		}
		b.CongestionControl = utils.Ptr(cc)
	}
	if mode := q.Get("udp_relay_mode"); mode != "" {
		b.UDPRelayMode = utils.Ptr(mode)
	}
	b.DisableSNI = utils.Ptr(utils.QueryPositive(q, "disable_sni"))
	b.ZeroRTTHandshake = utils.Ptr(anyPositive(q, "reduce_rtt", "zero_rtt_handshake"))
	b.AllowInsecure = utils.Ptr(anyPositive(q, "allow_insecure", "insecure", "allowInsecure"))
	return b, nil
}

func tuicURI(b *bean.Tuic5) (string, error) {
	u, err := newURL("tuic", &b.Base)
	if err != nil {
		return "", err
	}
	u.Path = "/"
	u.User = url.UserPassword(utils.Val(b.UUID), utils.Val(b.Password))

	q := url.Values{}
	q.Set("version", "5")
	setNonEmpty(q, "sni", utils.Val(b.SNI))
	setNonEmpty(q, "alpn", linesToComma(utils.Val(b.ALPN)))
	if cc := utils.Val(b.CongestionControl); cc != "" {
		q.Set("congestion_control", cc)
		q.Set("congestion_controller", cc)
	}
	setNonEmpty(q, "udp_relay_mode", utils.Val(b.UDPRelayMode))
	if utils.Val(b.DisableSNI) {
		q.Set("disable_sni", "1")
	}
	if utils.Val(b.ZeroRTTHandshake) {
		q.Set("reduce_rtt", "1")
	}
	if utils.Val(b.AllowInsecure) {
		q.Set("allow_insecure", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
