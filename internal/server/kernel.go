package server

import (
	"github.com/nfrund/parley/internal/module"
	"github.com/nfrund/parley/internal/modules/chat"
)

// AppModules returns the application modules. The server iterates over them
// to register and boot each one; modules hold state, so every server gets
// fresh instances.
func AppModules() []module.Module {
	return []module.Module{
		chat.New(),
	}
}
