package bean

import (
	"bytes"
	"testing"

	"github.com/e1732a364fed/vs_profile/utils"
)

func TestMergeHysteria2(t *testing.T) {
	local := &Hysteria2{
		AllowInsecure:               utils.Ptr(true),
		UploadMbps:                  utils.Ptr(int64(30)),
		PinnedPeerCertificateSha256: utils.Ptr("local-pin"),
		Certificates:                utils.Ptr("local-cert"),
		HopInterval:                 utils.Ptr(int64(90)),
	}
	Materialize(local)

	fetched := &Hysteria2{
		AllowInsecure:               utils.Ptr(false),
		UploadMbps:                  utils.Ptr(int64(100)),
		PinnedPeerCertificateSha256: utils.Ptr(""),
		Certificates:                utils.Ptr("server-cert"),
		Auth:                        utils.Ptr("new-auth"),
	}
	Materialize(fetched)

	Merge(local, fetched)

	expect(t, "allowInsecure escalated", utils.Val(fetched.AllowInsecure), true)
	expect(t, "uploadMbps copied", utils.Val(fetched.UploadMbps), int64(30))
	expect(t, "blank pin filled", utils.Val(fetched.PinnedPeerCertificateSha256), "local-pin")
	expect(t, "set cert kept", utils.Val(fetched.Certificates), "server-cert")
	expect(t, "hop copied", utils.Val(fetched.HopInterval), int64(90))
	expect(t, "auth untouched", utils.Val(fetched.Auth), "new-auth")

	// never tightened
	strict := &Hysteria2{AllowInsecure: utils.Ptr(false)}
	Materialize(strict)
	loose := &Hysteria2{AllowInsecure: utils.Ptr(true)}
	Materialize(loose)
	Merge(strict, loose)
	expect(t, "allowInsecure kept", utils.Val(loose.AllowInsecure), true)

	// source blank does not clear target
	src := &Hysteria2{}
	Materialize(src)
	dst := &Hysteria2{PinnedPeerCertificatePublicKeySha256: utils.Ptr("keep")}
	Materialize(dst)
	Merge(src, dst)
	expect(t, "pin kept", utils.Val(dst.PinnedPeerCertificatePublicKeySha256), "keep")
}

func TestMergeFillsAbsentFromSource(t *testing.T) {
	src := &Juicity{Certificates: utils.Ptr("")}
	dst := &Juicity{}
	Merge(src, dst)
	if dst.Certificates == nil || *dst.Certificates != "" {
		t.Fatal("absent target should take source even when blank")
	}

	src = &Juicity{}
	dst = &Juicity{}
	Merge(src, dst)
	if dst.Certificates != nil {
		t.Fatal("absent source left absent target absent")
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	src := &Hysteria{UploadMbps: utils.Ptr(int64(5))}
	dst := &Hysteria{}
	Merge(src, dst)
	*src.UploadMbps = 6
	expect(t, "target value", utils.Val(dst.UploadMbps), int64(5))
}

func TestMergeV2RayFamily(t *testing.T) {
	src := &VMess{}
	src.WsUseBrowserForwarder = utils.Ptr(true)
	src.ExperimentalAuthenticatedLength = utils.Ptr(true)
	src.ExperimentalNoTerminationSignal = utils.Ptr(false)
	Materialize(src)

	dst := &VMess{}
	dst.ExperimentalNoTerminationSignal = utils.Ptr(true)
	dst.UUID = utils.Ptr("uuid")
	Materialize(dst)

	Merge(src, dst)
	expect(t, "forwarder", utils.Val(dst.WsUseBrowserForwarder), true)
	expect(t, "authLen", utils.Val(dst.ExperimentalAuthenticatedLength), true)
	expect(t, "noTerm overwritten", utils.Val(dst.ExperimentalNoTerminationSignal), false)
	expect(t, "uuid", utils.Val(dst.UUID), "uuid")

	// shadowsocks does not take the v2ray layer rules
	ssSrc := &Shadowsocks{SingUoT: utils.Ptr(true)}
	ssSrc.AllowInsecure = utils.Ptr(true)
	Materialize(ssSrc)
	ssDst := &Shadowsocks{}
	Materialize(ssDst)
	Merge(ssSrc, ssDst)
	expect(t, "ss allowInsecure", utils.Val(ssDst.AllowInsecure), false)
	expect(t, "ss uot", utils.Val(ssDst.SingUoT), true)
}

func TestMergeKindMismatch(t *testing.T) {
	for _, dst := range samples() {
		before := Encode(dst)
		for _, src := range samples() {
			if src.Kind() == dst.Kind() {
				continue
			}
			Merge(src, dst)
		}
		if !bytes.Equal(before, Encode(dst)) {
			t.Fatalf("%s modified by a merge of another kind", DisplayName(dst))
		}
	}
	Merge(nil, &Tuic5{})
	Merge(&Tuic5{}, nil)
}

func TestMergeOnlyTouchesTarget(t *testing.T) {
	for _, src := range samples() {
		before := Encode(src)
		dst, _ := New(src.Kind())
		Merge(src, dst)
		if !bytes.Equal(before, Encode(src)) {
			t.Fatalf("%s: source modified", DisplayName(src))
		}
	}
}
