package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	Mode             string
	CompanyNumber    string
	EnvFile          string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the tool: onetime or automated (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	companyFlag := flag.String("company", "", "Companies House company number to watch (overrides config and environment)")
	companyFlagAlias := flag.String("n", "", "Alias for -company")

	envFile := flag.String("env-file", ".env", "Path to a dotenv file loaded before the configuration")

	flag.Parse()

	flags := AppFlags{EnvFile: *envFile}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if *companyFlag != "" {
		flags.CompanyNumber = *companyFlag
	} else if *companyFlagAlias != "" {
		flags.CompanyNumber = *companyFlagAlias
	}

	return flags
}
