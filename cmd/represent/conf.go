package main

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// config is the configuration of the command, loaded before it runs.
var config *koanfadapter.KConf

// loadConfig is called by cobra's initialization mechanism, which allows no
// return value.
func loadConfig() {
	k := koanf.New(".")
	// Configuration files are located with the application key REPRESENT and
	// use the NestedText format.
	konf := koanfadapter.New(k, "REPRESENT", []string{"nt"})
	konf.InitDefaults()
	if err := mergeEnv(konf); err != nil {
		tracing.Errorf("%v", err)
		exit(1)
	}
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf("%v", err)
		exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf("%v", err)
		exit(1)
	}
	config = konf
}

// mergeEnv loads REPRESENT_* environment variables, e.g. REPRESENT_PREC.
func mergeEnv(konf *koanfadapter.KConf) error {
	return konf.Koanf().Load(env.Provider("REPRESENT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "REPRESENT_"))
	}), nil)
}

// mergeFlags loads the command line flags. Flags left at their defaults do
// not override values from the environment.
func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	if err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil); err != nil {
		return err
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return nil
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go")
	level := konf.GetString("tracelevel")
	if level == "" {
		level = "Error"
	}
	for _, key := range []string{"trace.root", "trace.represent", "trace.cli"} {
		if !konf.IsSet(key) {
			konf.Set(key, level)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
