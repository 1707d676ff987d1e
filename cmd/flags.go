package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bind panics on a nil flag, which only happens on a typo in this package.
func bind(v *viper.Viper, f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
