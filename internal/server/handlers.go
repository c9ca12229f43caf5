package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithFields(logrus.Fields{"tool": params.Name}).WithError(err).Info("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each image tool opens the file in a session, runs its operation inside the
// session scope and returns a plain result value, so no pixel data outlives
// the call.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_format":
		return s.handleImageFormat(args)
	case "image_pixel_color":
		return s.handleImagePixelColor(args)

	// Transformations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_thumbnail":
		return s.handleImageThumbnail(args)
	case "image_fit_within":
		return s.handleImageFitWithin(args)
	case "image_convert":
		return s.handleImageConvert(args)

	case "image_version":
		return s.handleImageVersion()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image output ===

// outputArgs selects where a transformed image goes: saved to Output when
// set, otherwise returned inline encoded as Format (default "png").
type outputArgs struct {
	Output string `json:"output,omitempty"`
	Format string `json:"format,omitempty"`
}

// ImageResult describes a transformed image.
type ImageResult struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	// Set when the image was saved.
	Output string `json:"output,omitempty"`

	// Set when the image is returned inline.
	MimeType    string `json:"mime_type,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

var mimeTypes = map[codec.Format]string{
	codec.FormatPNG:  "image/png",
	codec.FormatJPEG: "image/jpeg",
	codec.FormatGIF:  "image/gif",
	codec.FormatBMP:  "image/bmp",
	codec.FormatTIFF: "image/tiff",
	codec.FormatWebP: "image/webp",
}

// emit saves or encodes img according to o.
func (s *Server) emit(img *imaging.Session, o outputArgs) (*ImageResult, error) {
	w, err := img.Width()
	if err != nil {
		return nil, err
	}
	h, _ := img.Height()
	registry := s.engine.Registry()

	if o.Output != "" {
		ok, err := img.Save(o.Output)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Errorf("failed to save %s", o.Output)
		}
		format := registry.FromFilename(o.Output)
		if format == codec.FormatUnknown {
			format = img.Format()
		}
		return &ImageResult{Width: w, Height: h, Format: string(format), Output: o.Output}, nil
	}

	ext := strings.TrimPrefix(o.Format, ".")
	if ext == "" {
		ext = "png"
	}
	data, err := img.Encode(ext)
	if err != nil {
		return nil, err
	}
	format := registry.FromFilename("." + ext)
	return &ImageResult{
		Width:       w,
		Height:      h,
		Format:      string(format),
		MimeType:    mimeTypes[format],
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.engine.LoadImageInfo(a.Path)
}

// FormatResult reports what the registry knows about a file's format.
type FormatResult struct {
	Path        string `json:"path,omitempty"`
	Format      string `json:"format"`
	Readable    bool   `json:"readable"`
	Writable    bool   `json:"writable"`
	ICCProfiles bool   `json:"icc_profiles"`
}

func (s *Server) handleImageFormat(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	registry := s.engine.Registry()
	format := s.engine.ResolveFormat(a.Path)
	return &FormatResult{
		Path:        a.Path,
		Format:      string(format),
		Readable:    registry.SupportsReading(format),
		Writable:    registry.SupportsWriting(format),
		ICCProfiles: registry.SupportsICC(format),
	}, nil
}

type imagePixelColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// PixelColorResult is the color at one pixel. Found is false, and Color nil,
// when the coordinate resolves to no color.
type PixelColorResult struct {
	X          int                  `json:"x"`
	Y          int                  `json:"y"`
	Found      bool                 `json:"found"`
	Color      *imaging.ColorResult `json:"color,omitempty"`
	Colorspace string               `json:"colorspace"`
}

func (s *Server) handleImagePixelColor(args json.RawMessage) (interface{}, error) {
	var a imagePixelColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	result := &PixelColorResult{X: a.X, Y: a.Y}
	err := s.engine.Load(a.Path, func(img *imaging.Session) error {
		c, err := img.SampleColor(a.X, a.Y)
		if err != nil {
			return err
		}
		result.Found = c != nil
		result.Color = c
		result.Colorspace, err = img.Colorspace()
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// === Transformation Handlers ===

type imageCropArgs struct {
	Path   string `json:"path"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
	Region string `json:"region,omitempty"`
	outputArgs
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result *ImageResult
	err := s.engine.Load(a.Path, func(img *imaging.Session) error {
		if a.Region != "" {
			w, _ := img.Width()
			h, _ := img.Height()
			r, err := imaging.QuadrantRect(w, h, a.Region)
			if err != nil {
				return err
			}
			a.X1, a.Y1, a.X2, a.Y2 = r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
		}
		return img.Crop(a.X1, a.Y1, a.X2, a.Y2, func(out *imaging.Session) (err error) {
			result, err = s.emit(out, a.outputArgs)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageResizeArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	outputArgs
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result *ImageResult
	err := s.engine.Load(a.Path, func(img *imaging.Session) error {
		return img.Resize(a.Width, a.Height, func(out *imaging.Session) (err error) {
			result, err = s.emit(out, a.outputArgs)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageThumbnailArgs struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	Square bool   `json:"square"`
	outputArgs
}

func (s *Server) handleImageThumbnail(args json.RawMessage) (interface{}, error) {
	var a imageThumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result *ImageResult
	emit := func(out *imaging.Session) (err error) {
		result, err = s.emit(out, a.outputArgs)
		return err
	}
	err := s.engine.Load(a.Path, func(img *imaging.Session) error {
		if a.Square {
			return img.CroppedThumbnail(a.Size, emit)
		}
		return img.Thumbnail(a.Size, emit)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageFitWithinArgs struct {
	Path      string `json:"path"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
	outputArgs
}

func (s *Server) handleImageFitWithin(args json.RawMessage) (interface{}, error) {
	var a imageFitWithinArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result *ImageResult
	err := s.engine.Load(a.Path, func(img *imaging.Session) error {
		return img.FitWithin(a.MaxWidth, a.MaxHeight, func(out *imaging.Session) (err error) {
			result, err = s.emit(out, a.outputArgs)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageConvertArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.Wrap(imaging.ErrInvalidArgument, "output path is required")
	}

	var result *ImageResult
	err := s.engine.Load(a.Path, func(img *imaging.Session) (err error) {
		result, err = s.emit(img, outputArgs{Output: a.Output})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// VersionResult lists the codec library version and the registered formats.
type VersionResult struct {
	Version string         `json:"version"`
	Formats []FormatResult `json:"formats"`
}

func (s *Server) handleImageVersion() (interface{}, error) {
	registry := s.engine.Registry()

	result := &VersionResult{Version: imaging.Version()}
	for _, f := range registry.Formats() {
		result.Formats = append(result.Formats, FormatResult{
			Format:      string(f),
			Readable:    registry.SupportsReading(f),
			Writable:    registry.SupportsWriting(f),
			ICCProfiles: registry.SupportsICC(f),
		})
	}
	return result, nil
}
