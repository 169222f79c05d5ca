package policy

// Sokol returns the tables for the sokol header family.
func Sokol() *Table {
	return &Table{
		ModuleNames: map[string]string{
			"slog_":   "svlog",
			"sg_":     "svg",
			"sapp_":   "svapp",
			"stm_":    "svtm",
			"saudio_": "svaudio",
			"sgl_":    "svgl",
			"sdtx_":   "svdtx",
			"sshape_": "svshape",
			"sglue_":  "svglue",
			"sfetch_": "svfetch",
			"simgui_": "svimgui",
		},
		CSourcePaths: map[string]string{
			"slog_":   "c/sokol_log.c",
			"sg_":     "c/sokol_gfx.c",
			"sapp_":   "c/sokol_app.c",
			"stm_":    "c/sokol_time.c",
			"saudio_": "c/sokol_audio.c",
			"sgl_":    "c/sokol_gl.c",
			"sdtx_":   "c/sokol_debugtext.c",
			"sshape_": "c/sokol_shape.c",
			"sglue_":  "c/sokol_glue.c",
			"sfetch_": "c/sokol_fetch.c",
			"simgui_": "c/sokol_imgui.c",
		},
		Ignores: map[string]bool{
			"sdtx_printf":            true,
			"sdtx_vprintf":           true,
			"sg_install_trace_hooks": true,
			"sg_trace_hooks":         true,
		},
		Callbacks: map[string]bool{
			"slog_func": true,
		},
		Overrides: map[Key]string{
			Sym("sgl_error"):                                 "sgl_get_error", // 'error' is reserved in V
			Sym("sgl_deg"):                                   "sgl_as_degrees",
			Sym("sgl_rad"):                                   "sgl_as_radians",
			Member("sg_apply_uniforms", "ub_slot"):           "uint32_t",
			Member("sg_draw", "base_element"):                "uint32_t",
			Member("sg_draw", "num_elements"):                "uint32_t",
			Member("sg_draw", "num_instances"):               "uint32_t",
			Member("sshape_element_range_t", "base_element"): "uint32_t",
			Member("sshape_element_range_t", "num_elements"): "uint32_t",
			Member("sdtx_font", "font_index"):                "uint32_t",
			Sym("SGL_NO_ERROR"):                              "SGL_ERROR_NO_ERROR",
			Sym("sfetch_continue"):                           "continue_fetching", // 'continue' is reserved in V
			Sym("sfetch_desc"):                               "sfetch_get_desc",   // 'desc' shadowed by earlier definition
		},
		Keywords: map[string]bool{
			"shared":   true,
			"lock":     true,
			"continue": true,
		},
		PrimTypes: map[string]string{
			"int":       "int",
			"bool":      "bool",
			"char":      "u8",
			"int8_t":    "i8",
			"uint8_t":   "u8",
			"int16_t":   "i16",
			"uint16_t":  "u16",
			"int32_t":   "int",
			"uint32_t":  "u32",
			"int64_t":   "i64",
			"uint64_t":  "u64",
			"float":     "f32",
			"double":    "f64",
			"uintptr_t": "usize",
			"intptr_t":  "isize",
			"size_t":    "usize",
		},
		PrimDefaults: map[string]string{
			"int":       "0",
			"bool":      "false",
			"char":      "0",
			"int8_t":    "0",
			"uint8_t":   "0",
			"int16_t":   "0",
			"uint16_t":  "0",
			"int32_t":   "0",
			"uint32_t":  "0",
			"int64_t":   "0",
			"uint64_t":  "0",
			"float":     "0.0",
			"double":    "0.0",
			"uintptr_t": "0",
			"intptr_t":  "0",
			"size_t":    "0",
		},
		HelperPrelude: []string{
			"// helper functions",
			"// converts a V string to a C string pointer",
			"fn vstring_to_cstring(v_str string) &u8 {",
			"\treturn v_str.str",
			"}",
		},
	}
}
