package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// withOutput adds the shared output/format properties of transformation tools.
func withOutput(props map[string]interface{}) map[string]interface{} {
	props["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional destination path. The format follows its extension. When omitted the image is returned as base64",
	}
	props["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpg", "gif", "bmp", "tiff", "webp"},
		"description": "Encoding of the inline image when no output is given. Default png",
		"default":     "png",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, colorspace and bit depth. EXIF orientation is applied first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_format",
			Description: "Detect the format of an image file from its content (falling back to the extension) and report what the codec can do with it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_pixel_color",
			Description: "Get the color at a pixel coordinate as hex, RGB and HSL. Palette images are resolved through their palette.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    integerProperty("X coordinate (0-based, from left)"),
					"y":    integerProperty("Y coordinate (0-based, from top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Transformations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image. The copy is exact: color layout, palette and color profile are kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"x1":   integerProperty("Left edge X coordinate (0-based)"),
					"y1":   integerProperty("Top edge Y coordinate (0-based)"),
					"x2":   integerProperty("Right edge X coordinate (exclusive)"),
					"y2":   integerProperty("Bottom edge Y coordinate (exclusive)"),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract instead of coordinates",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image to exact dimensions with a Catmull-Rom filter.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path":   pathProperty(),
					"width":  integerProperty("Target width in pixels (> 0)"),
					"height": integerProperty("Target height in pixels (> 0)"),
				}),
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_thumbnail",
			Description: "Scale an image so its longest edge is size pixels. With square set, the longest edge is first center-cropped to match the shortest.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"size": integerProperty("Length of the longest edge in pixels (> 0)"),
					"square": map[string]interface{}{
						"type":        "boolean",
						"description": "Produce a size x size center-cropped thumbnail. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path", "size"},
			},
		},
		{
			Name:        "image_fit_within",
			Description: "Shrink an image proportionally so it fits within a bounding box. Images that already fit are left at their size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path":       pathProperty(),
					"max_width":  integerProperty("Maximum width in pixels (> 0)"),
					"max_height": integerProperty("Maximum height in pixels (> 0)"),
				}),
				"required": []string{"path", "max_width", "max_height"},
			},
		},
		{
			Name:        "image_convert",
			Description: "Save an image under a new path. The output format follows the extension, or the source format when the extension is not known.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Destination path",
					},
				},
				"required": []string{"path", "output"},
			},
		},

		{
			Name:        "image_version",
			Description: "Report the codec library version and the supported formats.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
