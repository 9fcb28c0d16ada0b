package group

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/zap"
)

// Entry is a profile stored in a group. ID 0 means not stored yet.
type Entry struct {
	ID    int64
	Order int64
	Bean  bean.Bean
}

// Changes is the outcome of Update: what the caller has to write back, and a summary by
// display name.
type Changes struct {
	Insert []Entry
	Update []Entry
	Delete []Entry

	Added     []string
	Updated   map[string]string // 旧名字 -> 新名字
	Deleted   []string
	Duplicate []string
	Reordered []string
}

// Changed counts the profiles that were added, modified or removed. Pure reorders are not
// counted.
func (c *Changes) Changed() int {
	return len(c.Added) + len(c.Updated) + len(c.Deleted)
}

// Update reconciles the fetched profiles of a subscription with existing, the profiles
// currently stored in its group.
//
// Fetched profiles whose name matches the subscription's name filter are dropped; the rest
// are materialized, given unique display names and, when the subscription asks for it,
// deduplicated by identity. Stored profiles are matched to fetched ones by display name:
// matched ones keep their id and take the fetched settings after the user's own settings
// were merged in, unmatched stored ones are deleted and unmatched fetched ones inserted.
// Orders follow the fetched list starting from 1.
func Update(sub *Subscription, fetched []bean.Bean, existing []Entry) (*Changes, error) {
	sub.Materialize()

	proxies := fetched
	if filter := *sub.NameFilter; filter != "" {
		re, err := regexp.Compile(filter)
		if err != nil {
			return nil, utils.ErrInErr{ErrDesc: "bad subscription name filter", ErrDetail: utils.ErrWrongParameter, Data: filter}
		}
		kept := proxies[:0:0]
		for _, p := range proxies {
			if !re.MatchString(utils.Val(p.GetBase().Name)) {
				kept = append(kept, p)
			}
		}
		proxies = kept
	}

	for _, p := range proxies {
		bean.Materialize(p)
	}
	proxies = uniqueNames(proxies)

	c := &Changes{Updated: map[string]string{}}
	if *sub.Deduplication {
		proxies, c.Duplicate = deduplicate(proxies)
	}

	nameMap := make(map[string]bean.Bean, len(proxies))
	names := make([]string, 0, len(proxies))
	for _, p := range proxies {
		n := bean.DisplayName(p)
		if _, ok := nameMap[n]; !ok {
			names = append(names, n)
		}
		nameMap[n] = p
	}

	toReplace := map[string]Entry{}
	for _, e := range existing {
		n := bean.DisplayName(e.Bean)
		_, fresh := nameMap[n]
		_, taken := toReplace[n]
		if !fresh || taken {
			c.Delete = append(c.Delete, e)
			c.Deleted = append(c.Deleted, n)
			continue
		}
		toReplace[n] = e
	}

	var order int64 = 1
	for _, n := range names {
		p := nameMap[n]
		e, ok := toReplace[n]
		switch {
		case !ok:
			c.Insert = append(c.Insert, Entry{Order: order, Bean: p})
			c.Added = append(c.Added, n)
			logChange("inserted profile", n)
		default:
			bean.Merge(e.Bean, p)
			oldName := bean.DisplayName(e.Bean)
			if !bean.Equal(e.Bean, p) {
				// 内容变了的只换内容, 位置保持用户的
				e.Bean = p
				c.Update = append(c.Update, e)
				c.Updated[oldName] = n
				logChange("updated profile", n)
			} else if e.Order != order {
				e.Bean, e.Order = p, order
				c.Update = append(c.Update, e)
				c.Reordered = append(c.Reordered, n)
				logChange("reordered profile", n)
			}
		}
		order++
	}

	sub.LastUpdated = utils.Ptr(time.Now().Unix())

	if ce := utils.CanLogInfo("subscription updated"); ce != nil {
		ce.Write(
			zap.Int("profiles", len(names)),
			zap.Int("added", len(c.Added)),
			zap.Int("updated", len(c.Updated)),
			zap.Int("deleted", len(c.Deleted)),
			zap.Int("duplicate", len(c.Duplicate)),
		)
	}
	return c, nil
}

func logChange(msg, name string) {
	if ce := utils.CanLogDebug(msg); ce != nil {
		ce.Write(zap.String("name", name))
	}
}

// 同名的依次改为 "name (1)", "name (2)" ...
func uniqueNames(proxies []bean.Bean) []bean.Bean {
	seen := make(map[string]bool, len(proxies))
	for _, p := range proxies {
		name := bean.DisplayName(p)
		for index := 1; seen[name]; index++ {
			name = strings.ReplaceAll(name, " ("+strconv.Itoa(index-1)+")", "")
			name = name + " (" + strconv.Itoa(index) + ")"
			p.GetBase().Name = utils.Ptr(name)
		}
		seen[bean.DisplayName(p)] = true
	}
	return proxies
}

// 按身份去重, 保留第一次出现的. dup 里是 "名字 (序号)", 序号为保留下来的那个在结果中的位置
func deduplicate(proxies []bean.Bean) (unique []bean.Bean, dup []string) {
	index := map[string]int{}
	reported := map[string]bool{}

	for _, p := range proxies {
		key := string(bean.IdentityKey(p))
		i, ok := index[key]
		if !ok {
			index[key] = len(unique)
			unique = append(unique, p)
			continue
		}
		suffix := " (" + strconv.Itoa(i) + ")"
		if !reported[key] {
			reported[key] = true
			dup = append(dup, bean.DisplayName(unique[i])+suffix)
		}
		dup = append(dup, bean.DisplayName(p)+suffix)
	}
	return
}
