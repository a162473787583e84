package app

import (
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/modules/http_probe"
	"github.com/vk/latentgrid/modules/mod_fetch"
	"github.com/vk/latentgrid/modules/pause"
	"github.com/vk/latentgrid/modules/service_init"
	"github.com/vk/latentgrid/modules/service_teardown"
	"github.com/vk/latentgrid/modules/socketio_event"
)

// coreModules is the definitive list of all command modules that are
// compiled into the latentgrid binary.
var coreModules = []registry.Module{
	&service_init.Module{},
	&service_teardown.Module{},
	&mod_fetch.Module{},
	&http_probe.Module{},
	&socketio_event.Module{},
	&pause.Module{},
}
