package manifest

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

func translateModule(ctx context.Context, block *moduleBlock) (*Module, error) {
	mod := &Module{Name: block.Name, Description: block.Description}

	for _, c := range block.Classes {
		mod.Classes = append(mod.Classes, Class{Name: c.Name, Annotation: c.Annotation})
	}
	for _, c := range block.Configs {
		def, err := evalDefault(ctx, c.Default, "default")
		if err != nil {
			return nil, fmt.Errorf("module '%s', config '%s': %w", block.Name, c.Key, err)
		}
		mod.Configs = append(mod.Configs, registry.ConfigDecl{
			Key:         c.Key,
			Default:     def,
			Description: c.Description,
			Module:      block.Name,
		})
	}
	for _, a := range block.Annotators {
		d, err := translateAnnotator(ctx, block.Name, a)
		if err != nil {
			return nil, err
		}
		mod.Annotators = append(mod.Annotators, d)
	}
	return mod, nil
}

func translateAnnotator(ctx context.Context, module string, a *annotatorBlock) (*placeholder.Descriptor, error) {
	role, err := placeholder.ParseRole(a.Role)
	if err != nil {
		return nil, fmt.Errorf("annotator '%s:%s': %w", module, a.Function, err)
	}
	d := &placeholder.Descriptor{
		Module:              module,
		Function:            a.Function,
		Role:                role,
		Description:         a.Description,
		Languages:           slices.Clone(a.Language),
		Order:               a.Order,
		SourceType:          a.SourceType,
		ImportOutputs:       slices.Clone(a.ImportOutputs),
		ImportOutputsConfig: a.ImportOutputsConfig,
	}
	if role == placeholder.RoleImporter && d.SourceType == "" {
		return nil, fmt.Errorf("importer '%s' needs a source_type", d.FullName())
	}

	for _, p := range a.Params {
		kind, err := placeholder.ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("annotator '%s', param '%s': %w", d.FullName(), p.Name, err)
		}
		def, err := evalDefault(ctx, p.Default, "default")
		if err != nil {
			return nil, fmt.Errorf("annotator '%s', param '%s': %w", d.FullName(), p.Name, err)
		}
		d.Params = append(d.Params, placeholder.Param{
			Name:         p.Name,
			Kind:         kind,
			Value:        p.Value,
			Values:       slices.Clone(p.Values),
			Default:      def,
			Description:  p.Description,
			Class:        p.Class,
			AllDocs:      p.AllDocs,
			Common:       p.Common,
			Data:         p.Data,
			IsInput:      p.IsInput,
			AbsolutePath: p.AbsolutePath,
		})
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
