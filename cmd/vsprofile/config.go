package main

import (
	"github.com/BurntSushi/toml"
	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

// VSConf 是 toml 配置文件的格式
type VSConf struct {
	App      *AppConf      `toml:"app"`
	Features *FeaturesConf `toml:"features"`
}

// AppConf 配置App级别的配置
type AppConf struct {
	LogLevel *int    `toml:"loglevel"` //需要为指针, 否则无法判断0到底是未给出的默认值还是 显式声明的0
	LogFile  *string `toml:"logfile"`

	Store   *string `toml:"store"`
	Workers *int    `toml:"workers"`

	// 更新订阅时使用
	ProxyURL  string `toml:"proxy"`
	UserAgent string `toml:"user_agent"`
}

type FeaturesConf struct {
	HysteriaPortHopping   bool `toml:"hysteria_port_hopping"`
	Hysteria2ProviderCore bool `toml:"hysteria2_provider_core"`
}

var (
	appConf  = &AppConf{}
	features bean.Features
)

func loadConfig(fn string) (*VSConf, error) {
	var conf VSConf
	if _, err := toml.DecodeFile(fn, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// 命令行参数优先于配置文件
func setupByConf(conf *VSConf) {
	if conf == nil {
		return
	}
	if ac := conf.App; ac != nil {
		appConf = ac

		if ac.LogFile != nil && !utils.IsFlagGiven("lf") {
			utils.LogOutFileName = *ac.LogFile
		}
		if ac.LogLevel != nil && !utils.IsFlagGiven("ll") {
			utils.LogLevel = *ac.LogLevel
		}
		if ac.Store != nil && !utils.IsFlagGiven("s") {
			storeFileName = *ac.Store
		}
		if ac.Workers != nil && !utils.IsFlagGiven("w") {
			workers = *ac.Workers
		}
	}
	if fc := conf.Features; fc != nil {
		features.HysteriaPortHopping = fc.HysteriaPortHopping
		features.Hysteria2ProviderCore = fc.Hysteria2ProviderCore
	}
}
