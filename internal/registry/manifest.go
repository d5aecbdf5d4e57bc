// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes block manifests. A manifest unit is an HCL file holding one
// or more `module` blocks, each of which declares the blocks it provides:
//
//	module "Power_Supply" {
//	  description = "Bench power supply"
//
//	  block "Set Voltage (voltage)" {
//	    description = "Sets the output voltage."
//	    lifecycle {
//	      on_run = "PowerSupplySetVoltage"
//	    }
//	    input "voltage" {
//	      type    = number
//	      default = 12
//	    }
//	  }
//	}
//
// Decoding produces plain definitions; binding them to compiled actions
// happens in Load.
package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/hclutil"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// moduleDef is the decoded form of one `module` block.
type moduleDef struct {
	Name        string
	Description string
	Blocks      []blockDef
}

// blockDef is the decoded form of one `block` block.
type blockDef struct {
	Name        string
	Description string
	OnRun       string
	Inputs      []model.InputSpec
}

// manifestRootSchema defines the top-level structure of a unit.
type manifestRootSchema struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// blockLifecycle maps a block's events to Go handler names.
type blockLifecycle struct {
	OnRun string `hcl:"on_run,attr"`
}

var moduleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "block", LabelNames: []string{"name"}},
	},
}

var blockBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "lifecycle"},
		{Type: "input", LabelNames: []string{"name"}},
	},
}

// inputBodySchema is the HCL schema for the body of an `input` block.
var inputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is required, but we check for its existence manually
		// to provide a better error message.
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// parseManifest decodes every module of a unit. Any error diagnostic
// invalidates the whole unit.
func parseManifest(ctx context.Context, file *hcl.File, path string) ([]moduleDef, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing block manifest", "file_path", path)

	var diags hcl.Diagnostics
	if file == nil {
		return nil, append(diags, &hcl.Diagnostic{Severity: hcl.DiagError, Summary: "HCL file is nil"})
	}

	root := &manifestRootSchema{}
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, root)...)
	if diags.HasErrors() {
		return nil, diags
	}

	modules := make([]moduleDef, 0, len(root.Modules))
	for _, m := range root.Modules {
		def, modDiags := parseModule(m)
		diags = append(diags, modDiags...)
		modules = append(modules, def)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	logger.Debug("Parsed block manifest", "file_path", path, "modules", len(modules))
	return modules, diags
}

func parseModule(m *hclModule) (moduleDef, hcl.Diagnostics) {
	def := moduleDef{Name: m.Name}

	content, diags := m.Body.Content(moduleBodySchema)
	if diags.HasErrors() {
		return def, diags
	}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Description)...)
	}

	seen := make(map[string]bool)
	for _, b := range content.Blocks.OfType("block") {
		name := b.Labels[0]
		if seen[name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate block definition",
				Detail:   fmt.Sprintf("Module '%s' already declares a block named '%s'.", m.Name, name),
				Subject:  &b.DefRange,
			})
			continue
		}
		seen[name] = true

		blk, blkDiags := parseBlock(b)
		diags = append(diags, blkDiags...)
		def.Blocks = append(def.Blocks, blk)
	}
	return def, diags
}

func parseBlock(b *hcl.Block) (blockDef, hcl.Diagnostics) {
	def := blockDef{Name: b.Labels[0]}

	content, diags := b.Body.Content(blockBodySchema)
	if diags.HasErrors() {
		return def, diags
	}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Description)...)
	}

	lifecycleBlock, lcDiags := hclutil.FindUniqueBlock(content.Blocks, "lifecycle")
	diags = append(diags, lcDiags...)
	if lifecycleBlock == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing lifecycle block",
			Detail:   fmt.Sprintf("Block '%s' must declare a lifecycle with an on_run handler.", def.Name),
			Subject:  &b.DefRange,
		})
	} else {
		var lc blockLifecycle
		diags = append(diags, gohcl.DecodeBody(lifecycleBlock.Body, nil, &lc)...)
		def.OnRun = lc.OnRun
	}

	inputs, inDiags := parseInputs(content.Blocks)
	diags = append(diags, inDiags...)
	def.Inputs = inputs

	return def, diags
}

// parseInputs decodes the `input` blocks of a block in declaration order.
func parseInputs(blocks hcl.Blocks) ([]model.InputSpec, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var inputs []model.InputSpec
	seen := make(map[string]bool)

	for _, block := range blocks.OfType("input") {
		// The schema guarantees us one label.
		name := block.Labels[0]

		if seen[name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate input definition",
				Detail:   fmt.Sprintf("An input named '%s' has already been defined.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = true

		content, contentDiags := block.Body.Content(inputBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, exists := content.Attributes["type"]
		if !exists {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   "The 'type' attribute is required for all input blocks.",
				Subject:  &missing,
			})
			continue
		}

		ty, typeDiags := hclutil.TypeFromExpr(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		spec := model.InputSpec{Name: name, Type: ty}

		if attr, ok := content.Attributes["description"]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Description)...)
		}

		if attr, ok := content.Attributes["default"]; ok {
			// Defaults must be literal values, so no eval context.
			val, valDiags := attr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			conv, err := convertDefault(val, ty)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s': %s.", name, ty.FriendlyName(), err),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			spec.Default = &conv
		}

		inputs = append(inputs, spec)
	}

	return inputs, diags
}

func convertDefault(val cty.Value, ty cty.Type) (cty.Value, error) {
	if val.IsNull() {
		return cty.NilVal, fmt.Errorf("default must not be null")
	}
	return convert.Convert(val, ty)
}
