package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/e1732a364fed/vs_profile/store"
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

var (
	configFileName string
	storeFileName  string
	groupName      string
	workers        int

	startMProf       bool
	interactive_mode bool
	cmdPrintVer      bool
)

const (
	defaultConfFn  = "vsprofile.toml"
	defaultStoreFn = "profiles.vsps"
	defaultGroup   = "default"
)

func init() {
	flag.StringVar(&configFileName, "c", defaultConfFn, "config file name")
	flag.StringVar(&storeFileName, "s", defaultStoreFn, "profile store file")
	flag.StringVar(&groupName, "g", defaultGroup, "group name used by import")
	flag.IntVar(&workers, "w", 0, "decode workers, 0 means one per cpu")

	flag.BoolVar(&startMProf, "mp", false, "memory pprof")
	flag.BoolVar(&interactive_mode, "i", false, "enable interactive commandline mode")
	flag.BoolVar(&cmdPrintVer, "v", false, "print the version string then exit")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n", os.Args[0])
		flag.PrintDefaults()
		printUsage(flag.CommandLine.Output())
	}
}

func main() {
	os.Exit(mainFunc())
}

func mainFunc() (result int) {
	defer func() {
		if r := recover(); r != nil {
			if ce := utils.CanLogErr("Captured panic!"); ce != nil {
				ce.Write(
					zap.Any("err:", r),
					zap.String("stacktrace", string(debug.Stack())),
				)
			} else {
				log.Println("panic captured!", r, "\n", string(debug.Stack()))
			}
			result = -3
		}
	}()

	utils.ParseFlags()

	if cmdPrintVer {
		printVersion_simple(os.Stdout)
		return
	}

	if startMProf {
		//若不使用 NoShutdownHook, 则 我们ctrl+c退出时不会产生 pprof文件
		p := profile.Start(profile.MemProfile, profile.MemProfileRate(1), profile.NoShutdownHook)
		defer p.Stop()
	}

	fpath := utils.GetFilePath(configFileName)
	if utils.FileExist(fpath) {
		conf, err := loadConfig(fpath)
		if err != nil {
			log.Printf("can not load config %q: %s\n", fpath, err)
			return -1
		}
		setupByConf(conf)
	} else if utils.GivenFlags["c"] != nil {
		log.Printf("-c provided but %q doesn't exist\n", configFileName)
		return -1
	}

	utils.InitLog()

	if ce := utils.CanLogDebug("All Given Flags"); ce != nil {
		ce.Write(zap.Any("flags", utils.GivenFlags))
	}

	s, err := store.OpenFile(storeFileName)
	if err != nil {
		if ce := utils.CanLogErr("open store failed"); ce != nil {
			ce.Write(zap.String("file", storeFileName), zap.Error(err))
		} else {
			log.Println("open store failed", err)
		}
		return -1
	}

	if interactive_mode {
		printVersion(os.Stdout)
		runCli(s)
		return
	}

	if err = runCommand(s, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -2
	}
	return
}
