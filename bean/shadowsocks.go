package bean

import (
	"strings"

	"github.com/e1732a364fed/vs_profile/wire"
)

const shadowsocksVersion = 6

type Shadowsocks struct {
	StandardV2Ray

	Method   *string
	Password *string
	Plugin   *string

	ExperimentReducedIvHeadEntropy *bool
	SingUoT                        *bool
}

func encodeShadowsocks(out *wire.Output, b *Shadowsocks) {
	out.WriteInt(shadowsocksVersion)
	encodeV2Ray(out, &b.StandardV2Ray, b)
	out.Str(b.Method)
	out.Str(b.Password)
	out.Str(b.Plugin)
	out.Bool(b.ExperimentReducedIvHeadEntropy)
	out.Bool(b.SingUoT)
}

func decodeShadowsocks(in *wire.Input, b *Shadowsocks) {
	version := in.ReadVersion("shadowsocks layer", shadowsocksVersion)
	if version >= 5 {
		decodeV2Ray(in, &b.StandardV2Ray, b)
	} else {
		decodeEndpoint(in, &b.Base)
	}
	b.Method = in.Str()
	b.Password = in.Str()
	b.Plugin = in.Str()
	if version >= 1 {
		b.ExperimentReducedIvHeadEntropy = in.Bool()
	}
	if version == 2 || version == 3 {
		in.SkipBool() // uot
	}
	if version == 3 {
		in.SkipBool() // encryptedProtocolExtension
	}
	if version >= 6 {
		b.SingUoT = in.Bool()
	}
}

// PluginName 返回 plugin 字符串中选中的插件名, 如 "obfs-local;obfs=http" 得 "obfs-local"
func (b *Shadowsocks) PluginName() string {
	if b.Plugin == nil {
		return ""
	}
	name, _, _ := strings.Cut(*b.Plugin, ";")
	return strings.TrimSpace(name)
}

// PluginOptions 解析 plugin 字符串中 ; 之后的 k=v 选项
func (b *Shadowsocks) PluginOptions() map[string]string {
	m := map[string]string{}
	if b.Plugin == nil {
		return m
	}
	parts := strings.Split(*b.Plugin, ";")
	for _, p := range parts[1:] {
		k, v, _ := strings.Cut(p, "=")
		if k = strings.TrimSpace(k); k != "" {
			m[k] = v
		}
	}
	return m
}
