// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"reflect"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/dotmog/mogwaid/fault"
)

// table keys are matched exactly against the gluamapper struct tags
var mapper = gluamapper.Mapper{
	Option: gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  "gluamapper",
	},
}

// ParseConfigurationFile - execute a Lua file and decode the table it
// returns into config, which must be a struct pointer
func ParseConfigurationFile(fileName string, config interface{}) error {
	return parse(fileName, config, func(L *lua.LState) error {
		return L.DoFile(fileName)
	})
}

// ParseConfigurationString - as ParseConfigurationFile but the script
// is given directly, name is only passed to it as arg[0]
func ParseConfigurationString(name string, script string, config interface{}) error {
	return parse(name, config, func(L *lua.LState) error {
		return L.DoString(script)
	})
}

func parse(name string, config interface{}, execute func(*lua.LState) error) error {
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fault.ErrInvalidStructPointer
	}

	L := lua.NewState()
	defer L.Close()
	L.OpenLibs()

	arg := L.NewTable()
	arg.RawSetInt(0, lua.LString(name))
	L.SetGlobal("arg", arg)

	if err := execute(L); nil != err {
		return err
	}

	if 0 == L.GetTop() {
		return fmt.Errorf("configuration: %s returned nothing", name)
	}
	table, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return fmt.Errorf("configuration: %s returned %s not a table", name, L.Get(-1).Type())
	}
	return mapper.Map(table, config)
}
