package main

import (
	"fmt"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/share"
	"github.com/e1732a364fed/vs_profile/store"
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/manifoldco/promptui"
)

type CliCmd struct {
	Name string
	F    func(s store.Store)
}

func (cc CliCmd) String() string {
	return cc.Name
}

var cliCmdList = []CliCmd{
	{"列出所有分组", func(s store.Store) {
		report(cmdList(s, nil))
	}},
	{"列出分组中的配置", func(s store.Store) {
		if id, ok := askID("分组 id"); ok {
			report(cmdList(s, []string{id}))
		}
	}},
	{"导入分享链接", interactively_importLink},
	{"导出分享链接", func(s store.Store) {
		if id, ok := askID("配置 id"); ok {
			report(cmdExport(s, []string{id}))
		}
	}},
	{"更新订阅", func(s store.Store) {
		if id, ok := askID("分组 id"); ok {
			report(cmdRefresh(s, []string{id}))
		}
	}},
	{"删除配置", func(s store.Store) {
		if id, ok := askID("配置 id"); ok {
			report(cmdDelete(s, []string{id}))
		}
	}},
	{"调节日志等级", func(store.Store) {
		interactively_adjust_loglevel()
	}},
	{"生成一个随机的uuid供你参考", func(store.Store) {
		fmt.Printf("New random uuid : %s\n", utils.GenerateUUIDStr())
	}},
}

func report(err error) {
	if err != nil {
		fmt.Printf("失败: %s\n", err)
	}
}

func askID(label string) (string, bool) {
	p := promptui.Prompt{
		Label:    label,
		Validate: utils.WrapFuncForPromptUI(govalidator.IsInt),
	}
	r, err := p.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return "", false
	}
	return r, true
}

//交互式命令行用户界面
//
//阻塞，可按ctrl+C退出或回退到上一级
func runCli(s store.Store) {
	defer func() {
		fmt.Printf("Interactive Mode exited. \n")
		if ce := utils.CanLogInfo("Interactive Mode exited"); ce != nil {
			ce.Write()
		}
	}()

	for {
		Select := promptui.Select{
			Label: "请选择想执行的功能",
			Items: cliCmdList,
		}

		i, result, err := Select.Run()
		if err != nil {
			fmt.Printf("Prompt failed %v\n", err)
			return
		}

		fmt.Printf("你选择了 %s\n", result)

		if f := cliCmdList[i].F; f != nil {
			f(s)
		}
	}
}

func interactively_importLink(s store.Store) {
	p := promptui.Prompt{
		Label: "分享链接",
		Validate: func(str string) error {
			_, err := share.Parse(str)
			return err
		},
	}
	link, err := p.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}
	b, _ := share.Parse(link)

	g, err := groupByName(s, groupName)
	if err != nil {
		report(err)
		return
	}
	rows, err := store.Add(s, g.ID, []bean.Bean{b})
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("已导入, id %d\n", rows[0].ID)
}

func interactively_adjust_loglevel() {
	list := []string{"debug", "info", "warning", "error"}
	Select := promptui.Select{
		Label: "请选择日志等级",
		Items: list,
	}
	i, result, err := Select.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	utils.LogLevel = i
	utils.InitLog()
	fmt.Printf("日志等级已调为 %s (%s)\n", strconv.Itoa(i), result)
}
