package app

import (
	"github.com/vk/annograph/internal/registry"
	"github.com/vk/annograph/modules/csvexport"
	"github.com/vk/annograph/modules/cwb"
	"github.com/vk/annograph/modules/hist"
	"github.com/vk/annograph/modules/misc"
	"github.com/vk/annograph/modules/segment"
	"github.com/vk/annograph/modules/sensaldo"
	"github.com/vk/annograph/modules/statsexport"
	"github.com/vk/annograph/modules/xmlimport"
)

// coreModules is the definitive list of all modules that are compiled into
// the annograph binary.
var coreModules = []registry.Module{
	&segment.Module{},
	&xmlimport.Module{},
	&sensaldo.Module{},
	&csvexport.Module{},
	&statsexport.Module{},
	&cwb.Module{},
	&misc.Module{},
	&hist.Module{},
}
