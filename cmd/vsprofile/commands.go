package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/group"
	"github.com/e1732a364fed/vs_profile/share"
	"github.com/e1732a364fed/vs_profile/store"
	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/zap"
)

//本文件下所有命令的输出统一使用 fmt 而不是 log

type command struct {
	usage string
	run   func(s store.Store, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"import":  {"import <file|->  导入分享链接/订阅内容到 -g 指定的分组", cmdImport},
		"sub":     {"sub <name> <link>  新建订阅分组", cmdSub},
		"refresh": {"refresh <group id> [file]  更新订阅, 给出 file 时不下载", cmdRefresh},
		"list":    {"list [group id]  列出分组或分组中的配置", cmdList},
		"export":  {"export <id>...  导出分享链接", cmdExport},
		"delete":  {"delete <id>...  删除配置", cmdDelete},
		"decode":  {"decode <kind> <base64>  解码一条记录并以 toml 打印", cmdDecode},
		"kinds":   {"kinds  打印所有记录类型", cmdKinds},
		"fp":      {"fp  打印支持的 utls 指纹", cmdFingerprints},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	names := utils.GetMapSortedKeySlice(commands)
	for _, n := range names {
		fmt.Fprintln(w, "  "+commands[n].usage)
	}
}

func runCommand(s store.Store, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return nil
	}
	c, ok := commands[args[0]]
	if !ok {
		printUsage(os.Stderr)
		return utils.ErrInErr{ErrDesc: "unknown command", ErrDetail: utils.ErrWrongParameter, Data: args[0]}
	}
	return c.run(s, args[1:])
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return utils.ErrInErr{ErrDesc: "usage: " + usage, ErrDetail: utils.ErrWrongParameter}
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, utils.ErrInErr{ErrDesc: "bad id", ErrDetail: utils.ErrWrongParameter, Data: s}
	}
	return id, nil
}

// 按名字找分组, 没有就新建
func groupByName(s store.Store, name string) (store.Group, error) {
	for _, g := range s.Groups() {
		if g.Name == name {
			return g, nil
		}
	}
	return s.PutGroup(store.Group{Name: name})
}

func readInput(fn string) (string, error) {
	var bs []byte
	var err error
	if fn == "-" {
		bs, err = io.ReadAll(os.Stdin)
	} else {
		bs, err = os.ReadFile(fn)
	}
	return string(bs), err
}

func cmdImport(s store.Store, args []string) error {
	if err := needArgs(args, 1, commands["import"].usage); err != nil {
		return err
	}
	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	list, err := group.ParseRaw(text)
	if err != nil {
		return err
	}
	g, err := groupByName(s, groupName)
	if err != nil {
		return err
	}
	rows, err := store.Add(s, g.ID, list)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d profiles into group %d (%s)\n", len(rows), g.ID, g.Name)
	return nil
}

func cmdSub(s store.Store, args []string) error {
	if err := needArgs(args, 2, commands["sub"].usage); err != nil {
		return err
	}
	sub := &group.Subscription{Link: utils.Ptr(args[1])}
	if appConf.UserAgent != "" {
		sub.CustomUserAgent = utils.Ptr(appConf.UserAgent)
	}
	sub.Materialize()
	g, err := s.PutGroup(store.Group{Name: args[0], Subscription: sub.Encode()})
	if err != nil {
		return err
	}
	fmt.Printf("subscription group %d created\n", g.ID)
	return nil
}

func cmdRefresh(s store.Store, args []string) error {
	if err := needArgs(args, 1, commands["refresh"].usage); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	g, err := s.Group(id)
	if err != nil {
		return err
	}
	if len(g.Subscription) == 0 {
		return utils.ErrInErr{ErrDesc: "not a subscription group", ErrDetail: utils.ErrWrongParameter, Data: id}
	}
	sub, err := group.DecodeSubscription(g.Subscription)
	if err != nil {
		return err
	}

	var text string
	if len(args) > 1 {
		if text, err = readInput(args[1]); err != nil {
			return err
		}
	} else {
		if *sub.Link == "" {
			return utils.ErrInErr{ErrDesc: "subscription has no link", ErrDetail: utils.ErrInvalidData, Data: id}
		}
		d, err := utils.Download(appConf.ProxyURL, *sub.Link, *sub.CustomUserAgent)
		if err != nil {
			return err
		}
		sub.ApplyUserinfo(d.Header.Get("Subscription-Userinfo"))
		text = string(d.Body)
	}

	fetched, err := group.ParseRaw(text)
	if err != nil {
		return err
	}
	existing, failed, err := store.Entries(s, g.ID, workers)
	if err != nil {
		return err
	}
	if failed > 0 {
		if ce := utils.CanLogWarn("some stored profiles can not be decoded, they will be replaced"); ce != nil {
			ce.Write(zap.Int("failed", failed))
		}
	}

	c, err := group.Update(sub, fetched, existing)
	if err != nil {
		return err
	}
	if err = store.Apply(s, g.ID, c); err != nil {
		return err
	}
	g.Subscription = sub.Encode()
	if _, err = s.PutGroup(g); err != nil {
		return err
	}

	fmt.Printf("added %d, updated %d, deleted %d, duplicate %d\n", len(c.Added), len(c.Updated), len(c.Deleted), len(c.Duplicate))
	for old, n := range c.Updated {
		if old != n {
			fmt.Printf("  %s -> %s\n", old, n)
		}
	}
	return nil
}

func printGroup(w io.Writer, g store.Group) {
	fmt.Fprintf(w, "%d\t%s", g.ID, g.Name)
	if len(g.Subscription) > 0 {
		if sub, err := group.DecodeSubscription(g.Subscription); err == nil {
			fmt.Fprintf(w, "\t%s", *sub.Link)
			if *sub.BytesUsed > 0 {
				fmt.Fprintf(w, "\tused %s", humanize.Bytes(uint64(*sub.BytesUsed)))
			}
			if *sub.BytesRemaining > 0 {
				fmt.Fprintf(w, "\tremaining %s", humanize.Bytes(uint64(*sub.BytesRemaining)))
			}
			if *sub.ExpiryDate > 0 {
				fmt.Fprintf(w, "\texpires %s", humanize.Time(time.Unix(*sub.ExpiryDate, 0)))
			}
			if *sub.LastUpdated > 0 {
				fmt.Fprintf(w, "\tupdated %s", humanize.Time(time.Unix(*sub.LastUpdated, 0)))
			}
		}
	}
	fmt.Fprintln(w)
}

func printEntry(w io.Writer, e group.Entry) {
	b := e.Bean
	var marks []string
	if bean.IsInsecure(b) {
		marks = append(marks, "insecure")
	}
	if bean.CanMapping(b, features) {
		marks = append(marks, "mapping")
	}
	if bean.NeedProtect(b, features) {
		marks = append(marks, "protect")
	}
	fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, bean.ProtocolName(b), bean.DisplayName(b), bean.DisplayAddress(b), bean.Network(b), strings.Join(marks, ","))
}

func cmdList(s store.Store, args []string) error {
	if len(args) == 0 {
		for _, g := range s.Groups() {
			printGroup(os.Stdout, g)
		}
		return nil
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	entries, failed, err := store.Entries(s, id, workers)
	if err != nil {
		return err
	}
	for _, e := range entries {
		printEntry(os.Stdout, e)
	}
	counts := utils.CountBy(entries, func(e group.Entry) string { return e.Bean.Kind().String() })
	for _, k := range utils.GetMapSortedKeySlice(counts) {
		fmt.Printf("%s: %d  ", k, counts[k])
	}
	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d profiles could not be decoded\n", failed)
	}
	return nil
}

func loadBean(s store.Store, arg string) (bean.Bean, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	r, err := s.Row(id)
	if err != nil {
		return nil, err
	}
	return bean.Decode(r.Kind, r.Data)
}

func cmdExport(s store.Store, args []string) error {
	if err := needArgs(args, 1, commands["export"].usage); err != nil {
		return err
	}
	for _, arg := range args {
		b, err := loadBean(s, arg)
		if err != nil {
			return err
		}
		link, err := share.Export(b)
		if err != nil {
			return err
		}
		fmt.Println(link)
	}
	return nil
}

func cmdDelete(s store.Store, args []string) error {
	if err := needArgs(args, 1, commands["delete"].usage); err != nil {
		return err
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return s.DeleteRows(ids...)
}

func cmdDecode(_ store.Store, args []string) error {
	if err := needArgs(args, 2, commands["decode"].usage); err != nil {
		return err
	}
	kind, ok := bean.KindByName(args[0])
	if !ok {
		n, err := strconv.Atoi(args[0])
		if err != nil || !bean.Kind(n).Valid() {
			return utils.ErrInErr{ErrDesc: "unknown kind", ErrDetail: utils.ErrWrongParameter, Data: args[0]}
		}
		kind = bean.Kind(n)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(args[1]))
	if err != nil {
		return utils.ErrInErr{ErrDesc: "bad base64", ErrDetail: utils.ErrInvalidData, Data: err}
	}
	b, err := bean.Decode(kind, data)
	if err != nil {
		return err
	}
	str, err := utils.GetPurgedTomlStr(b)
	if err != nil {
		return err
	}
	fmt.Printf("# %s %s\n%s", kind, bean.DisplayName(b), str)
	return nil
}

func cmdKinds(store.Store, []string) error {
	names := bean.AllKindNames()
	sort.Strings(names)
	for _, n := range names {
		k, _ := bean.KindByName(n)
		fmt.Printf("%d\t%s\n", int32(k), n)
	}
	return nil
}

func cmdFingerprints(store.Store, []string) error {
	for _, n := range share.FingerprintNames() {
		fmt.Println(n)
	}
	return nil
}
