package gen

import (
	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
)

// Context holds everything a generator needs to produce output for one
// library module.
type Context struct {
	Module *model.Module
	Policy *policy.Table
	IRPath string // Path of the IR document the module was loaded from, used in errors
}

// NewContext creates a new generation context.
func NewContext(mod *model.Module, pol *policy.Table, irPath string) *Context {
	return &Context{
		Module: mod,
		Policy: pol,
		IRPath: irPath,
	}
}
