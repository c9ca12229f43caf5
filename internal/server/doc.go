// Package server implements the MCP (Model Context Protocol) server for the
// image-science tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging
// package through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_format: Detect the format and its codec capabilities
//   - image_pixel_color: Get color at pixel
//
// Transformations:
//   - image_crop: Extract a rectangular or named region
//   - image_resize: Resample to exact dimensions
//   - image_thumbnail: Scale the longest edge, optionally square-cropped
//   - image_fit_within: Shrink into a bounding box
//   - image_convert: Save under another format
//
// Other:
//   - image_version: Codec version and format table
//
// Transformation tools return the result inline as base64, or save it when
// an output path is given.
//
// # Image Lifetime
//
// Every tool call opens its image in a session and releases it before the
// response is written. Nothing is cached between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(nil, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
