package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/image-transform-mcp/internal/cache"
	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// Box is a pixel region with (X1,Y1) inclusive and (X2,Y2) exclusive.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// BoxOf converts r to a Box.
func BoxOf(r image.Rectangle) Box {
	return Box{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// FormatInfo is the JSON form of a geom.Format.
type FormatInfo struct {
	DisplayWindow Box     `json:"display_window"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	PixelAspect   float64 `json:"pixel_aspect"`
}

// FormatInfoOf converts f to a FormatInfo.
func FormatInfoOf(f geom.Format) FormatInfo {
	return FormatInfo{
		DisplayWindow: BoxOf(f.DisplayWindow),
		Width:         f.Width(),
		Height:        f.Height(),
		PixelAspect:   f.PixelAspect,
	}
}

// TransformRequest describes a transform of a loaded image.
type TransformRequest struct {
	Params transform.Params
	// Filter names the reconstruction filter; empty selects the default.
	Filter string
	// Workers bounds rendering parallelism; zero means GOMAXPROCS.
	Workers int
}

// node builds the transform for req, served through store when one is given.
func (req TransformRequest) node(src raster.Source, store *cache.Store) (*transform.ImageTransform, raster.Source) {
	node := transform.New(src, req.Params, req.Filter, raster.ResizeReformatter{Workers: req.Workers})
	if store == nil {
		return node, node
	}
	return node, store.Wrap(node)
}

// Fingerprints are the content hashes of a transform's outputs, in hex.
type Fingerprints struct {
	Format       string `json:"format"`
	DataWindow   string `json:"data_window"`
	ChannelNames string `json:"channel_names"`
	ScaledFormat string `json:"scaled_format,omitempty"`
}

func fingerprints(ctx context.Context, node *transform.ImageTransform) (Fingerprints, error) {
	var fp Fingerprints
	for _, kind := range []raster.Kind{raster.KindFormat, raster.KindDataWindow, raster.KindChannelNames} {
		h, err := node.Hash(ctx, kind, "", image.Point{})
		if err != nil {
			return Fingerprints{}, err
		}
		switch kind {
		case raster.KindFormat:
			fp.Format = h.String()
		case raster.KindDataWindow:
			fp.DataWindow = h.String()
		case raster.KindChannelNames:
			fp.ChannelNames = h.String()
		}
	}
	scaled, err := node.ScaledFormatHash(ctx)
	if err != nil {
		return Fingerprints{}, err
	}
	fp.ScaledFormat = scaled.String()
	return fp, nil
}

// BoundsResult describes a transform's outputs without computing any pixels.
type BoundsResult struct {
	Enabled      bool         `json:"enabled"`
	Filter       string       `json:"filter"`
	Format       FormatInfo   `json:"format"`
	ScaledFormat FormatInfo   `json:"scaled_format"`
	DataWindow   Box          `json:"data_window"`
	// Matrix is the residual transform applied to the input after it has
	// been reformatted to ScaledFormat.
	Matrix       [6]float64   `json:"matrix"`
	Fingerprints Fingerprints `json:"fingerprints"`
}

// TransformBounds reports the format, scaled format, data window, matrix and
// fingerprints of src transformed by req.
func TransformBounds(ctx context.Context, src raster.Source, req TransformRequest) (*BoundsResult, error) {
	node, _ := req.node(src, nil)
	return bounds(ctx, node, req)
}

func bounds(ctx context.Context, node *transform.ImageTransform, req TransformRequest) (*BoundsResult, error) {
	f, err := filter.Create(req.Filter)
	if err != nil {
		return nil, err
	}
	format, err := node.Format(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute format: %w", err)
	}
	scaled, err := node.ScaledFormat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scaled format: %w", err)
	}
	dataWindow, err := node.DataWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute data window: %w", err)
	}
	m, err := node.Matrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute matrix: %w", err)
	}
	fp, err := fingerprints(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fingerprints: %w", err)
	}
	return &BoundsResult{
		Enabled:      node.Enabled(),
		Filter:       f.Name(),
		Format:       FormatInfoOf(format),
		ScaledFormat: FormatInfoOf(scaled),
		DataWindow:   BoxOf(dataWindow),
		Matrix:       m.A,
		Fingerprints: fp,
	}, nil
}

// TransformResult contains the rendered transform and its metadata.
type TransformResult struct {
	BoundsResult
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	OutputPath  string `json:"output_path,omitempty"`
}

// TransformImage renders src transformed by req over its display window and
// returns it as a base64 PNG. Pixels outside the transformed data window are
// transparent black. When outputPath is set the image is also written there,
// encoded according to its extension (.png, .jpg, .jpeg or .bmp).
func TransformImage(ctx context.Context, src raster.Source, store *cache.Store, req TransformRequest, outputPath string) (*TransformResult, error) {
	var encoder imgio.Encoder
	if outputPath != "" {
		var err error
		if encoder, err = encoderFor(outputPath); err != nil {
			return nil, err
		}
	}

	node, served := req.node(src, store)
	b, err := bounds(ctx, node, req)
	if err != nil {
		return nil, err
	}

	img, err := raster.ToImage(ctx, served, req.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to render transform: %w", err)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode transformed image: %w", err)
	}

	if outputPath != "" {
		if err := imgio.Save(outputPath, img, encoder); err != nil {
			return nil, fmt.Errorf("failed to save transformed image: %w", err)
		}
	}

	return &TransformResult{
		BoundsResult: *b,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
		OutputPath:   outputPath,
	}, nil
}

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use .png, .jpg, .jpeg or .bmp", filepath.Ext(path))
	}
}
