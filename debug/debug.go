package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Prescan bool
	Parse   bool
	MD      bool
	Dir     bool
	Eval    bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Prescan = boolEnv("STDX_DEBUG_PRESCAN")
	d.Parse = boolEnv("STDX_DEBUG_PARSE")
	d.MD = boolEnv("STDX_DEBUG_MD")
	d.Dir = boolEnv("STDX_DEBUG_DIR")
	d.Eval = boolEnv("STDX_DEBUG_EVAL")
	d.LSP = boolEnv("STDX_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Prescan() bool {
	return d.Prescan
}
func Parse() bool {
	return d.Parse
}
func MD() bool {
	return d.MD
}
func Dir() bool {
	return d.Dir
}
func Eval() bool {
	return d.Eval
}
func LSP() bool {
	return d.LSP
}
